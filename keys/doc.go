/*
Package keys runs functions when key chords are pressed or released anywhere
on an X11 desktop, whichever window has the keyboard focus.

A chord is a key plus the modifier keys held with it, such as Control and Alt
and the Return key. X11 reports the state of Caps Lock, Num Lock and Scroll
Lock in the same modifier field as Control or Alt, so a grab for Control-Return
does not fire while Num Lock is on. A Registry therefore grabs every chord
under all 8 states of the three lock keys (see Expand), and matches an event's
exact modifier state against those 8 masks.

Typical use, with the X connection from package xconn:

	conn, err := xconn.Open("")
	if err != nil {
		log.Fatal(err)
	}
	reg := keys.NewRegistry(conn)
	b := keys.NewBinding(keys.XKReturn, []keys.Modifier{keys.Control, keys.Alt},
		keys.Pressed, keys.Func(openTerminal))
	if err := reg.Add(b); err != nil {
		log.Println(err)
	}
	d := keys.NewDispatcher(conn, reg)
	log.Fatal(d.Run(ctx))

Each matched action runs on its own goroutine, so a slow action does not hold
up the next key event. WithMaxConcurrent and WithSingleFlight limit how many
run at once.

When two bindings have the same trigger and one of the same expanded masks,
the one added last wins for that mask.
*/
package keys
