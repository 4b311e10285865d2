// Package chatbot answers event questions, either from a keyword rule table
// over live event data or through the Gemini API with the rules as fallback.
package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/cems/internal/app/models"
)

// Responder turns a user query into an assistant reply. It never fails;
// errors are reported through the reply text.
type Responder interface {
	Respond(ctx context.Context, query string) string
}

// EventSource is the read-only event data the responders quote
type EventSource interface {
	Count(ctx context.Context) (int64, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]*models.Event, error)
}

// UpcomingLimit is the number of events quoted for "upcoming" queries
const UpcomingLimit = 3

const dateLayout = "1/2/2006"

const errorReply = "I encountered an issue processing your request. Please try asking about upcoming events or event categories."

const (
	registerReply = "To register for an event:\n1. Browse available events\n2. Click on an event to view details\n3. Click the 'Register' button\n4. You must be logged in as a student to register\n\nNeed help finding a specific event?"

	myEventsReply = "You can view all your registered events in your Student Dashboard. Navigate to the dashboard from the main menu to see your complete event list."

	categoriesReply = "We have 4 event categories:\n• Technical - Hackathons, tech talks, coding competitions\n• Cultural - Music, dance, drama, art exhibitions\n• Sports - Tournaments, championships, athletic meets\n• Workshop - Skill-building sessions, training programs\n\nWhich category interests you?"

	helpReply = "I'm CEMS AI Assistant! I can help you with:\n• Finding events by category or date\n• Event registration information\n• Viewing upcoming events\n• Understanding event categories\n• General event queries\n\nWhat would you like to know?"

	venueReply = "Each event has a specific venue. You can see the venue details on the event page. Common venues include:\n• Main Auditorium\n• Sports Complex\n• Open Air Theater\n• Computer Labs\n• Innovation Hub\n\nLooking for a specific event's location?"

	defaultReply = "I can help you find events, get registration info, and answer questions about our college event management system. Try asking about:\n• Upcoming events\n• Events by category (technical, cultural, sports, workshop)\n• How to register\n• Your registered events\n\nWhat would you like to know?"
)

// categoryRule lists the events of one category
type categoryRule struct {
	keywords []string
	category models.EventCategory
	header   string
	footer   string
	empty    string
}

var categoryRules = []categoryRule{
	{
		keywords: []string{"technical", "tech", "hackathon"},
		category: models.CategoryTechnical,
		header:   "Here are our technical events:",
		footer:   "These events are perfect for coding enthusiasts!",
		empty:    "We don't have any technical events scheduled right now. Stay tuned!",
	},
	{
		keywords: []string{"cultural", "music", "dance", "art"},
		category: models.CategoryCultural,
		header:   "Check out these cultural events:",
		footer:   "Experience the diversity of our campus culture!",
		empty:    "No cultural events are currently scheduled. Check back later!",
	},
	{
		keywords: []string{"sports", "sport", "game", "tournament"},
		category: models.CategorySports,
		header:   "Here are our sports events:",
		footer:   "Ready to compete?",
		empty:    "No sports events are scheduled at the moment. Stay active!",
	},
	{
		keywords: []string{"workshop", "training", "learn"},
		category: models.CategoryWorkshop,
		header:   "Available workshops:",
		footer:   "Expand your skills with these hands-on sessions!",
		empty:    "No workshops are available right now. Keep learning!",
	},
}

// staticRule is a fixed reply to any of its keywords
type staticRule struct {
	keywords []string
	reply    string
}

var staticRules = []staticRule{
	{keywords: []string{"register", "signup", "how to join"}, reply: registerReply},
	{keywords: []string{"my events", "registered events", "my registrations"}, reply: myEventsReply},
	{keywords: []string{"categories", "types of events"}, reply: categoriesReply},
	{keywords: []string{"help", "what can you do"}, reply: helpReply},
	{keywords: []string{"venue", "location", "where"}, reply: venueReply},
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// RuleResponder answers from a keyword table, checked in order
type RuleResponder struct {
	events EventSource
	now    func() time.Time
}

// NewRuleResponder creates a RuleResponder over events
func NewRuleResponder(events EventSource) *RuleResponder {
	return &RuleResponder{events: events, now: time.Now}
}

// Respond implements Responder
func (r *RuleResponder) Respond(ctx context.Context, query string) string {
	reply, err := r.respond(ctx, strings.ToLower(query))
	if err != nil {
		return errorReply
	}
	return reply
}

func (r *RuleResponder) respond(ctx context.Context, q string) (string, error) {
	if containsAny(q, "how many events", "total events") {
		n, err := r.events.Count(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Currently, there are %d events available in our system. Would you like to explore them by category?", n), nil
	}

	if containsAny(q, "today", "upcoming") {
		events, err := r.events.ListUpcoming(ctx, r.now(), UpcomingLimit)
		if err != nil {
			return "", err
		}
		if len(events) == 0 {
			return "There are no upcoming events scheduled at the moment. Check back soon!", nil
		}
		lines := make([]string, 0, len(events))
		for _, e := range events {
			lines = append(lines, fmt.Sprintf("• %s (%s) on %s", e.Title, e.Category, e.Date.Format(dateLayout)))
		}
		return "Here are the upcoming events:\n" + strings.Join(lines, "\n") + "\n\nWould you like details on any specific event?", nil
	}

	for _, rule := range categoryRules {
		if !containsAny(q, rule.keywords...) {
			continue
		}
		events, err := r.events.List(ctx, models.EventFilter{Category: rule.category})
		if err != nil {
			return "", err
		}
		if len(events) == 0 {
			return rule.empty, nil
		}
		lines := make([]string, 0, len(events))
		for _, e := range events {
			lines = append(lines, fmt.Sprintf("• %s at %s on %s", e.Title, e.Venue, e.Date.Format(dateLayout)))
		}
		return rule.header + "\n" + strings.Join(lines, "\n") + "\n\n" + rule.footer, nil
	}

	for _, rule := range staticRules {
		if containsAny(q, rule.keywords...) {
			return rule.reply, nil
		}
	}
	return defaultReply, nil
}
