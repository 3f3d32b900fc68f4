package chat

import (
	"fmt"
	"log"
	"strings"

	"github.com/mattedesign/traction-pay-pilot-sub003/internal/load"
)

// AddMessageFunc appends an assistant message to the owning transcript and
// returns it. The processor never touches the transcript directly.
type AddMessageFunc func(content string, buttons ...Button) Message

// Outcome tells the orchestrator whether the turn was fully answered from
// the corpus. Handled=false means fall through to the AI collaborator.
type Outcome struct {
	Handled          bool
	ShowResultsPanel bool
}

// ProcessSearchResults renders classifier results directly when they answer
// the query on their own: a multi-match search becomes a summary message and
// a results panel, a single specific load becomes a detail message with its
// two action buttons. Everything else falls through untouched. Results are
// treated as read-only.
func ProcessSearchResults(routing load.RoutingResult, add AddMessageFunc) Outcome {
	switch {
	case routing.QueryType == load.QueryLoadSearch && len(routing.Results) > 1:
		var b strings.Builder
		fmt.Fprintf(&b, "I found %d loads matching your search:\n", len(routing.Results))
		for _, r := range routing.Results {
			fmt.Fprintf(&b, "Load #%s - %s - %s (%s)\n",
				r.Load.ID, r.Load.Broker, statusLabel(r.Load.Status), r.MatchReason)
		}
		add(strings.TrimRight(b.String(), "\n"))
		return Outcome{Handled: true, ShowResultsPanel: true}

	case routing.QueryType == load.QuerySpecificLoad && len(routing.Results) == 1:
		l := routing.Results[0].Load
		var b strings.Builder
		fmt.Fprintf(&b, "Load #%s is %s.\n", l.ID, statusLabel(l.Status))
		fmt.Fprintf(&b, "Broker: %s\n", l.Broker)
		fmt.Fprintf(&b, "Amount: %s\n", l.Amount)
		fmt.Fprintf(&b, "Route: %s to %s\n", l.Origin, l.Destination)
		fmt.Fprintf(&b, "Pickup: %s\n", l.PickupTime.Format("Jan 2, 2006 3:04 PM"))
		fmt.Fprintf(&b, "Distance: %s", l.Distance)

		navBtn, err := NewNavigateButton(
			"View Load Details",
			"/load/"+l.ID,
			fmt.Sprintf("Navigating to Load #%s details page", l.ID),
			true,
		)
		if err != nil {
			log.Printf("[chat] build navigate button for load %s: %v", l.ID, err)
			return Outcome{}
		}
		chatBtn, err := NewContinueChatButton(
			"Ask a follow-up",
			fmt.Sprintf("Tell me more about load #%s", l.ID),
		)
		if err != nil {
			log.Printf("[chat] build continue_chat button for load %s: %v", l.ID, err)
			return Outcome{}
		}
		add(b.String(), navBtn, chatBtn)
		return Outcome{Handled: true}
	}
	return Outcome{}
}

func statusLabel(s load.Status) string {
	switch s {
	case load.StatusPendingPickup:
		return "pending pickup"
	case load.StatusInTransit:
		return "in transit"
	case load.StatusDelivered:
		return "delivered"
	}
	return string(s)
}
