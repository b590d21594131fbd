package widget

// Kind selects the style modifier of the status line.
type Kind string

const (
	KindNeutral Kind = ""
	KindLoading Kind = "loading"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// StatusBaseClass is applied to the status line on every update.
const StatusBaseClass = "status-message"

// Status is the single status line of the widget. Only the latest value
// is kept.
type Status struct {
	Message string
	Kind    Kind
}

// Class returns the base class plus the kind modifier, if any.
func (s Status) Class() string {
	if s.Kind == KindNeutral {
		return StatusBaseClass
	}
	return StatusBaseClass + " " + StatusBaseClass + "--" + string(s.Kind)
}

// User-facing messages.
const (
	MsgInitial       = "No request has been made yet."
	MsgInvalidUserID = "Please enter a valid user ID (1-10)."
	MsgLoading       = "Loading posts..."
	MsgRestored      = "Posts loaded from storage."
	MsgCorrupted     = "Could not load saved data. Corrupted data was removed."
	MsgReadFailed    = "Could not read saved data."
	MsgSaveFailed    = "Could not save posts to storage."
	MsgSaveIDFailed  = "Could not save the user ID."
	MsgClearFailed   = "Could not remove saved posts."

	MsgNoPosts    = "No posts to display."
	MsgNoTitle    = "Untitled"
	MsgNoBody     = "No content"
	msgErrorFmt   = "Error: %s"
	msgSuccessFmt = "Success! Loaded %d posts."
	msgSkippedFmt = " (%d invalid records skipped)"
)
