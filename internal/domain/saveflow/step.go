package saveflow

import (
	"encoding/json"
	"fmt"
)

// StepType is the closed set of save-flow step kinds. Adding a kind means
// adding a variant struct and extending the switches in this file; unknown
// kinds fail decoding rather than silently no-op.
type StepType string

const (
	StepShowReasons   StepType = "show_reasons"
	StepPresentOffer  StepType = "present_offer"
	StepConfirmAction StepType = "confirm_action"
	StepSendEmail     StepType = "send_email"
	StepDelay         StepType = "delay"
)

// Step is a tagged union over the five step kinds. Exactly one config field
// is non-nil, matching Type.
type Step struct {
	Type          StepType           `json:"type"`
	ShowReasons   *ShowReasonsStep   `json:"show_reasons,omitempty"`
	PresentOffer  *PresentOfferStep  `json:"present_offer,omitempty"`
	ConfirmAction *ConfirmActionStep `json:"confirm_action,omitempty"`
	SendEmail     *SendEmailStep     `json:"send_email,omitempty"`
	Delay         *DelayStep         `json:"delay,omitempty"`
}

// ShowReasonsStep asks the customer why they are leaving.
type ShowReasonsStep struct {
	Title   string   `json:"title"`
	Reasons []string `json:"reasons"`
}

// PresentOfferStep shows one of the flow's offers, referenced by index.
type PresentOfferStep struct {
	OfferIndex int    `json:"offer_index"`
	Headline   string `json:"headline,omitempty"`
}

// ConfirmActionStep asks for a final confirmation before cancelling.
type ConfirmActionStep struct {
	Message string `json:"message"`
}

// SendEmailStep queues a templated email to the customer.
type SendEmailStep struct {
	Template string `json:"template"`
	Subject  string `json:"subject"`
}

// DelayStep waits before the next step fires.
type DelayStep struct {
	Hours int `json:"hours"`
}

// Validate checks the union invariant: the config field matching Type is set
// and no others are.
func (s *Step) Validate() error {
	configs := 0
	if s.ShowReasons != nil {
		configs++
	}
	if s.PresentOffer != nil {
		configs++
	}
	if s.ConfirmAction != nil {
		configs++
	}
	if s.SendEmail != nil {
		configs++
	}
	if s.Delay != nil {
		configs++
	}
	if configs > 1 {
		return fmt.Errorf("step has %d configs set, want at most 1", configs)
	}

	switch s.Type {
	case StepShowReasons:
		if s.ShowReasons == nil {
			return fmt.Errorf("show_reasons step missing config")
		}
	case StepPresentOffer:
		if s.PresentOffer == nil {
			return fmt.Errorf("present_offer step missing config")
		}
	case StepConfirmAction:
		if s.ConfirmAction == nil {
			return fmt.Errorf("confirm_action step missing config")
		}
	case StepSendEmail:
		if s.SendEmail == nil {
			return fmt.Errorf("send_email step missing config")
		}
		if s.SendEmail.Template == "" {
			return fmt.Errorf("send_email step requires a template")
		}
	case StepDelay:
		if s.Delay == nil {
			return fmt.Errorf("delay step missing config")
		}
		if s.Delay.Hours < 1 {
			return fmt.Errorf("delay step requires at least 1 hour")
		}
	default:
		return fmt.Errorf("unknown step type: %q", s.Type)
	}
	return nil
}

// UnmarshalJSON decodes a step and rejects unknown kinds.
func (s *Step) UnmarshalJSON(data []byte) error {
	type alias Step
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Step(a)
	return s.Validate()
}

// StepList is the ordered step configuration stored as a JSON column.
type StepList []Step

func (l StepList) Validate() error {
	for i := range l {
		if err := l[i].Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}
