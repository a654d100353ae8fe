package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/book-network/cmd/api/book"
	jsoniter "github.com/json-iterator/go"
)

/* Publishes lending events to an ntfy server, one message per event on a single topic. */
type Ntfy struct {
	baseURL string
	topic   string
	client  *http.Client
}

func NewNtfy(notificationsBaseURL, topic string, client *http.Client) *Ntfy {
	if client == nil {
		client = &http.Client{}
	}
	return &Ntfy{
		baseURL: notificationsBaseURL,
		topic:   topic,
		client:  client,
	}
}

// message is the JSON publishing format of ntfy.
type message struct {
	Topic   string   `json:"topic"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Tags    []string `json:"tags,omitempty"`
}

func (ntf *Ntfy) Publish(ctx context.Context, event book.Event) error {
	body, err := jsoniter.ConfigFastest.Marshal(newMessage(ntf.topic, event))
	if err != nil {
		return fmt.Errorf("encoding %s notification: %w", event.Type, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ntf.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("delivering %s notification to topic (%s): %w", event.Type, ntf.topic, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ntf.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivering %s notification to topic (%s): %w", event.Type, ntf.topic, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("delivering %s notification to topic (%s): unexpected status %d", event.Type, ntf.topic, resp.StatusCode)
	}
	return nil
}

func newMessage(topic string, event book.Event) message {
	m := message{Topic: topic, Tags: []string{string(event.Type)}}

	switch event.Type {
	case book.EventBookCreated:
		m.Title = "New book shared"
		m.Message = fmt.Sprintf("%q was added to the network.", event.BookTitle)
	case book.EventBookBorrowed:
		m.Title = "Book borrowed"
		m.Message = fmt.Sprintf("%q was borrowed (loan %s).", event.BookTitle, event.LoanID)
	case book.EventBookReturned:
		m.Title = "Book returned"
		m.Message = fmt.Sprintf("%q was returned and waits for the owner's approval (loan %s).", event.BookTitle, event.LoanID)
	case book.EventReturnApproved:
		m.Title = "Return approved"
		m.Message = fmt.Sprintf("The return of %q was approved (loan %s).", event.BookTitle, event.LoanID)
	case book.EventFeedbackSubmitted:
		m.Title = "New feedback"
		m.Message = fmt.Sprintf("Feedback was given on book %s (loan %s).", event.BookID, event.LoanID)
	case book.EventShareableToggled:
		m.Title = "Sharing changed"
		m.Message = fmt.Sprintf("%q changed its shareable status.", event.BookTitle)
	case book.EventArchivedToggled:
		m.Title = "Archive changed"
		m.Message = fmt.Sprintf("%q changed its archived status.", event.BookTitle)
	default:
		m.Title = string(event.Type)
		m.Message = fmt.Sprintf("book %s", event.BookID)
	}
	return m
}
