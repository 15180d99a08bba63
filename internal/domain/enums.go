package domain

// SourceKind identifies the modality that produced an activity signal.
type SourceKind string

const (
	SourceKindKeyboard SourceKind = "keyboard"
	SourceKindMouse    SourceKind = "mouse"
	SourceKindWindow   SourceKind = "window"
	SourceKindUnknown  SourceKind = "unknown"
)

func (s SourceKind) String() string { return string(s) }

func (s SourceKind) IsValid() bool {
	switch s {
	case SourceKindKeyboard, SourceKindMouse, SourceKindWindow, SourceKindUnknown:
		return true
	}
	return false
}

// ActivityType categorizes what kind of work a signal (or a whole session)
// represents. The classifier only ever produces focused_work, research,
// meeting, communication and personal; admin and idle exist so externally
// supplied distributions remain representable.
type ActivityType string

const (
	ActivityTypeFocusedWork   ActivityType = "focused_work"
	ActivityTypeResearch      ActivityType = "research"
	ActivityTypeMeeting       ActivityType = "meeting"
	ActivityTypeCommunication ActivityType = "communication"
	ActivityTypeAdmin         ActivityType = "admin"
	ActivityTypePersonal      ActivityType = "personal"
	ActivityTypeIdle          ActivityType = "idle"
)

func (a ActivityType) String() string { return string(a) }

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityTypeFocusedWork, ActivityTypeResearch, ActivityTypeMeeting,
		ActivityTypeCommunication, ActivityTypeAdmin, ActivityTypePersonal, ActivityTypeIdle:
		return true
	}
	return false
}

// EntryStatus represents the lifecycle state of a time entry.
// Transitions: pending → approved → billed; pending → rejected (terminal).
type EntryStatus string

const (
	EntryStatusPending  EntryStatus = "pending"
	EntryStatusApproved EntryStatus = "approved"
	EntryStatusRejected EntryStatus = "rejected"
	EntryStatusBilled   EntryStatus = "billed"
)

func (s EntryStatus) String() string { return string(s) }

func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusApproved, EntryStatusRejected, EntryStatusBilled:
		return true
	}
	return false
}

// EntrySource identifies how a time entry came to exist.
type EntrySource string

const (
	EntrySourceAuto     EntrySource = "auto"
	EntrySourceManual   EntrySource = "manual"
	EntrySourceImported EntrySource = "imported"
)

func (s EntrySource) String() string { return string(s) }

func (s EntrySource) IsValid() bool {
	switch s {
	case EntrySourceAuto, EntrySourceManual, EntrySourceImported:
		return true
	}
	return false
}

// RuleType identifies the pricing model of a billing rule.
type RuleType string

const (
	RuleTypeHourly   RuleType = "hourly"
	RuleTypeFixed    RuleType = "fixed"
	RuleTypeRetainer RuleType = "retainer"
)

func (r RuleType) String() string { return string(r) }

func (r RuleType) IsValid() bool {
	switch r {
	case RuleTypeHourly, RuleTypeFixed, RuleTypeRetainer:
		return true
	}
	return false
}

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusSent     InvoiceStatus = "sent"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusPartial  InvoiceStatus = "partial"
	InvoiceStatusOverdue  InvoiceStatus = "overdue"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

func (s InvoiceStatus) String() string { return string(s) }

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusPartial, InvoiceStatusOverdue, InvoiceStatusCanceled:
		return true
	}
	return false
}
