package session

// View is a screen of the application.
type View int

const (
	ViewSignIn View = iota
	ViewRegister
	ViewMain
)

func (v View) String() string {
	switch v {
	case ViewSignIn:
		return "signin"
	case ViewRegister:
		return "register"
	case ViewMain:
		return "main"
	default:
		return "unknown"
	}
}

// Protected views need a session.
func (v View) Protected() bool { return v == ViewMain }

// Entry views are only shown to signed-out users.
func (v View) Entry() bool { return v == ViewSignIn || v == ViewRegister }

// Authenticator reports whether a session is signed in.
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a guard check.
type Decision struct {
	View       View // the view to show
	Redirected bool // View differs from the one requested
}

// Guard enforces view-level access control.
type Guard struct {
	auth Authenticator
}

// NewGuard returns a guard consulting auth on every check.
func NewGuard(auth Authenticator) Guard {
	return Guard{auth: auth}
}

// Resolve returns the requested view when access is allowed. Otherwise it
// redirects: protected views to sign-in, entry views to the main view.
func (g Guard) Resolve(requested View) Decision {
	authed := g.auth != nil && g.auth.IsAuthenticated()
	switch {
	case requested.Protected() && !authed:
		return Decision{View: ViewSignIn, Redirected: true}
	case requested.Entry() && authed:
		return Decision{View: ViewMain, Redirected: true}
	}
	return Decision{View: requested}
}
