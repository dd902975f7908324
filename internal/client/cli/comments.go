package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
)

func (a *App) listComments(ctx context.Context, ticketID string) {
	if err := a.comments.FetchForTicket(ctx, ticketID); err != nil {
		fmt.Println("Failed to fetch comments:", err)
		return
	}

	view := a.comments.View()
	if len(view.Items) == 0 {
		fmt.Println("No comments")
		return
	}
	for _, c := range view.Items {
		author := c.Creator.Label()
		if author == "" {
			author = a.users.Label(c.CreatedBy)
		}
		fmt.Printf("[%s] %s\n%s\n\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), author, c.Description)
	}
}

func (a *App) addComment(ctx context.Context, ticketID string) {
	text, err := GetMultiline(a.reader, "Comment", os.Stdout)
	if err != nil {
		return
	}
	if text == "" {
		fmt.Println("Comment must not be empty")
		return
	}

	comment, err := a.comments.Create(ctx, api.CreateCommentInput{TicketID: ticketID, Description: text})
	if err != nil {
		fmt.Println("Failed to add comment:", err)
		return
	}
	fmt.Println("Added comment", comment.ID)
}
