package ticket

import (
	"sort"

	"go-support/internal/features/agent"
	"go-support/internal/features/customer"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketView is a ticket with its customer embedded. Agents is reserved for
// the assignee and is always null for now.
type TicketView struct {
	Ticket
	Customers *customer.Customer `json:"customers"`
	Agents    *agent.Summary     `json:"agents"`
}

// CustomerRef is the customer projection shown on the dashboard.
type CustomerRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// OpenTicketView is the reduced projection of the open-tickets dashboard.
type OpenTicketView struct {
	ID           primitive.ObjectID `json:"id"`
	TicketNumber string             `json:"ticket_number"`
	Title        string             `json:"title"`
	Status       string             `json:"status"`
	Customers    *CustomerRef       `json:"customers"`
}

// CommentView is a comment with its author embedded.
type CommentView struct {
	TicketComment
	Agents *agent.Summary `json:"agents"`
}

// customerIDs returns the distinct customer ids referenced by tickets.
func customerIDs(tickets []Ticket) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(tickets))
	ids := make([]primitive.ObjectID, 0, len(tickets))
	for _, t := range tickets {
		if t.CustomerID.IsZero() || seen[t.CustomerID] {
			continue
		}
		seen[t.CustomerID] = true
		ids = append(ids, t.CustomerID)
	}
	return ids
}

func agentIDs(comments []TicketComment) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(comments))
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		if c.AgentID == nil || seen[*c.AgentID] {
			continue
		}
		seen[*c.AgentID] = true
		ids = append(ids, *c.AgentID)
	}
	return ids
}

func sortTicketsNewestFirst(tickets []Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

// AssembleTicketViews left-joins customers onto tickets, newest first.
// Every ticket yields exactly one view.
func AssembleTicketViews(tickets []Ticket, customers map[primitive.ObjectID]*customer.Customer) []TicketView {
	sortTicketsNewestFirst(tickets)
	views := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, TicketView{
			Ticket:    t,
			Customers: customers[t.CustomerID],
		})
	}
	return views
}

// AssembleOpenTicketViews builds the dashboard projection, newest first.
func AssembleOpenTicketViews(tickets []Ticket, customers map[primitive.ObjectID]*customer.Customer) []OpenTicketView {
	sortTicketsNewestFirst(tickets)
	views := make([]OpenTicketView, 0, len(tickets))
	for _, t := range tickets {
		view := OpenTicketView{
			ID:           t.ID,
			TicketNumber: t.TicketNumber,
			Title:        t.Title,
			Status:       t.Status,
		}
		if c, ok := customers[t.CustomerID]; ok && c != nil {
			view.Customers = &CustomerRef{ID: c.ID, Name: c.Name}
		}
		views = append(views, view)
	}
	return views
}

// AssembleCommentViews left-joins agents onto comments, newest first.
func AssembleCommentViews(comments []TicketComment, agents map[primitive.ObjectID]*agent.Agent) []CommentView {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		view := CommentView{TicketComment: c}
		if c.AgentID != nil {
			view.Agents = agents[*c.AgentID].Summary()
		}
		views = append(views, view)
	}
	return views
}
