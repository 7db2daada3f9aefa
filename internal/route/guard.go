package route

// Decision is the outcome of a guard: either render the requested route or
// redirect somewhere else.
type Decision struct {
	Render     bool
	RedirectTo string
}

// Target returns the route that should actually be shown.
func (d Decision) Target(requested string) string {
	if d.Render {
		return requested
	}
	return d.RedirectTo
}

// Protected renders only for authenticated sessions; everyone else is sent to
// the login route.
func Protected(authenticated bool) Decision {
	if !authenticated {
		return Decision{RedirectTo: Login}
	}
	return Decision{Render: true}
}

// PublicOnly renders only for unauthenticated sessions; authenticated
// sessions go to the default protected route.
func PublicOnly(authenticated bool) Decision {
	if authenticated {
		return Decision{RedirectTo: Default}
	}
	return Decision{Render: true}
}

// Guard picks the guard for path's route class. Unknown paths are treated as
// the catch-all, which is protected.
func Guard(authenticated bool, path string) Decision {
	m := Resolve(path)
	if m.Pattern == Login || m.Pattern == Register {
		return PublicOnly(authenticated)
	}
	d := Protected(authenticated)
	if d.Render && m.Path != cleanPath(path) {
		// catch-all: render the landing route instead of the unknown path
		return Decision{RedirectTo: m.Path}
	}
	return d
}
