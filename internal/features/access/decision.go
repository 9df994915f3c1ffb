package access

import "slices"

type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
	FieldStartDate   Field = "startDate"
	FieldEndDate     Field = "endDate"
	FieldMembers     Field = "members"
	FieldPriority    Field = "priority"
	FieldDueDate     Field = "dueDate"
	FieldAssignee    Field = "assignee"
	FieldProject     Field = "project"
)

// Redactable is an incoming change set that can drop fields before persistence.
type Redactable interface {
	Strip(field Field)
}

type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
	EffectAllowWithRedaction
)

func (e Effect) String() string {
	switch e {
	case EffectAllow:
		return "allow"
	case EffectAllowWithRedaction:
		return "allow_with_redaction"
	default:
		return "deny"
	}
}

// Decision is the outcome of Authorize. The caller performs the mutation
// only when IsAllowed, after passing its change set through Apply.
type Decision struct {
	Effect   Effect
	Redacted []Field
	Reason   error
}

func Allow() Decision {
	return Decision{Effect: EffectAllow}
}

func AllowWithRedaction(fields ...Field) Decision {
	return Decision{Effect: EffectAllowWithRedaction, Redacted: fields}
}

func Deny(reason error) Decision {
	return Decision{Effect: EffectDeny, Reason: reason}
}

func (d Decision) IsAllowed() bool {
	return d.Effect == EffectAllow || d.Effect == EffectAllowWithRedaction
}

// Err is nil for allowing decisions and the denial reason otherwise.
func (d Decision) Err() error {
	if d.IsAllowed() {
		return nil
	}

	if d.Reason == nil {
		return ErrUnknownAction
	}

	return d.Reason
}

func (d Decision) Redacts(field Field) bool {
	return slices.Contains(d.Redacted, field)
}

func (d Decision) Apply(changes Redactable) {
	if changes == nil {
		return
	}

	for _, field := range d.Redacted {
		changes.Strip(field)
	}
}
