/*
Taokeys runs commands on global keyboard shortcuts under X11. It grabs each
configured chord, such as Control+Alt+Return, on the root window, so the chord
works whichever window has the keyboard focus, and it keeps working while Caps
Lock, Num Lock or Scroll Lock is on.


INSTALLATION

To install taokeys:
	1. Install Go (as per https://go.dev/doc/install or get it from
	   your distribution).
	2. Run "go install github.com/nigeltao/taokeys/taokeys@latest".

Taokeys is designed to run from an X session. Add this line to your
~/.xsession or ~/.xinitrc file, before the line that starts the window
manager:
	/path/to/your/taokeys run &


USAGE

	taokeys init     writes a default config file
	taokeys check    validates the config file and prints each chord
	                 with the raw modifier masks it will grab
	taokeys run      grabs the chords and runs their commands

Run "taokeys help <command>" for each command's flags.


CONFIGURATION

The config file is taokeys.yaml, looked for in $XDG_CONFIG_HOME/taokeys (or
~/.config/taokeys), then /etc/taokeys, then the current directory, unless the
--config flag names a file. For example:

	log_level: info
	workers: 8
	single_flight: true
	bindings:
	  - chord: Control+Alt+Return
	    exec: [gnome-terminal]
	  - chord: Super+l
	    trigger: release
	    exec: [gnome-screensaver-command, -l]
	  - chord: XF86AudioMute
	    exec: [pactl, set-sink-mute, "0", toggle]

A chord is modifier names and then a key name, joined by '+'. The modifiers
are Control (or Ctrl), Shift, Alt (Mod1), Super (Windows, Mod4), Mod5, and the
lock modifiers CapsLock, NumLock and ScrollLock, which match in every state
whether or not they are listed. Key names are as in
/usr/include/X11/keysymdef.h without the XK_ prefix, such as Return, space,
F1 or XF86AudioRaiseVolume, or a single character, or a hex keysym like
0xff0d. The key is named by its unshifted symbol: write Shift+1, not
exclam. A key with no modifiers fires with any modifiers held.

The trigger is press (the default) or release. With single_flight, a chord
is ignored while its previous command is still being started. The workers
setting caps how many commands are being started at once.

Each setting can also be given as an environment variable such as
TAOKEYS_LOG_LEVEL=debug, or a flag of "taokeys run". Editing the config file
while taokeys runs reloads its bindings; the other settings need a restart.


DEVELOPMENT

When working on taokeys, it can be run in a nested X server such as Xephyr:
	Xephyr :9 2>/dev/null &
	go run ./taokeys run --display :9 --log-level debug


LEGAL

Taokeys is copyright 2013 The Taowm Authors. All rights reserved. Use of this
source code is governed by a BSD-style license that can be found in the
LICENSE file.
*/
package main
