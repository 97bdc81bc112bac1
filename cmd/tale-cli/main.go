// Terminal interview client. Chat with the chronicler; /blog and /flyer
// forge a document from the collected interview lines.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lrklep/tale-of-light/internal/client"
	"github.com/lrklep/tale-of-light/internal/session"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:3000", "chronicle server address")
	flag.Parse()

	ctrl := session.NewController(client.New(*addr))
	fmt.Println("Speak with Valdris. Commands: /blog, /flyer, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/blog" || line == "/flyer":
			forge(ctrl, strings.TrimPrefix(line, "/"))
		default:
			reply, err := ctrl.Send(context.Background(), line)
			if err != nil {
				fmt.Println("! " + userMessage(err))
				continue
			}
			fmt.Println(reply)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func forge(ctrl *session.Controller, kind string) {
	resp, err := ctrl.GenerateStory(context.Background(), kind)
	if err != nil {
		fmt.Println("! " + userMessage(err))
		return
	}
	if resp.Title != "" {
		fmt.Printf("=== %s ===\n", resp.Title)
	}
	fmt.Println(resp.Story)
}

func userMessage(err error) string {
	var netErr *client.NetworkError
	var apiErr *client.APIError
	switch {
	case errors.Is(err, session.ErrNotEnoughMaterial):
		return "Please complete the interview first by chatting with Valdris."
	case errors.Is(err, session.ErrBusy):
		return "Valdris is still weaving a response."
	case errors.As(err, &netErr):
		return "The connection to Valdris's realm has been severed. Please check your connection and try again."
	case errors.As(err, &apiErr):
		return apiErr.Message
	}
	return err.Error()
}
