package entity

import (
	"context"
	"time"
)

// Stages written by the intake endpoints; later stages come from the client.
const (
	StagePrequalStarted = "Prequal-Started"
	StageIntake         = "Intake"
)

// DealFields is one Zoho Deal record keyed by CRM API field name.
type DealFields map[string]any

// DealWrite is the body accepted by the Deals insert/update endpoints.
type DealWrite struct {
	Data    []DealFields `json:"data"`
	Trigger []string     `json:"trigger,omitempty"`
}

// DefaultTriggers makes Zoho run approval, workflow and blueprint rules on insert.
var DefaultTriggers = []string{"approval", "workflow", "blueprint"}

type LeadGateway interface {
	InsertDeal(ctx context.Context, fields DealFields) ([]byte, error)
	UpdateDeal(ctx context.Context, id string, fields DealFields) ([]byte, error)
	GetDeal(ctx context.Context, id string) ([]byte, error)
}

const (
	LeadCreated = "lead.created"
	LeadUpdated = "lead.updated"
)

// LeadEvent is published after the CRM accepted a write.
type LeadEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	DealID     string    `json:"deal_id,omitempty"`
	Stage      string    `json:"stage,omitempty"`
	Email      string    `json:"email,omitempty"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}
