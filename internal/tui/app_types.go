package tui

type page int

const (
	pageAuth page = iota
	pageDashboard
	pageTasks
)

type authMode int

const (
	authLogin authMode = iota
	authSignup
)

// Auth form focus slots. Name/role only exist in signup mode; focus
// navigation skips them when logging in.
type authFocus int

const (
	authFocusName authFocus = iota
	authFocusEmail
	authFocusPassword
	authFocusRole
	authFocusSubmit
	authFocusSwitch
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditor
	modalConfirmDelete
)

// Editor form focus slots, in tab order.
type editorFocus int

const (
	editorFocusTitle editorFocus = iota
	editorFocusDescription
	editorFocusStatus
	editorFocusPriority
	editorFocusAssignee
	editorFocusDue
	editorFocusSave
	editorFocusCancel
)

// authDoneMsg reports a finished login/signup attempt.
type authDoneMsg struct{ err error }

// collectionsDoneMsg reports a finished task+user refresh.
type collectionsDoneMsg struct {
	tasksErr error
	usersErr error
}

// analyticsDoneMsg reports a finished analytics refresh.
type analyticsDoneMsg struct{ err error }

// mutateDoneMsg reports a finished create/update/delete (the view model has
// already re-fetched the collection on success).
type mutateDoneMsg struct {
	op  string
	err error
}
