//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served straight over the X11 protocol. Only
// PNG images are offered and requested.

var (
	initOnce sync.Once
	initErr  error
	owner    *x11Owner

	errTargetUnavailable = errors.New("clipboard has no image/png target")
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		o, err := newX11Owner()
		if err != nil {
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

// WritePNG takes ownership of the CLIPBOARD selection and serves data to
// whoever asks for image/png until another client takes it over.
func WritePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(data)
}

func readPNG() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return owner.fetch()
}

type selectionAtoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func internAtoms(conn *xgb.Conn) (selectionAtoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "image/png", "VASTUCROP_SELECTION"}
	atoms := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return selectionAtoms{}, err
		}
		atoms[i] = reply.Atom
	}
	return selectionAtoms{clipboard: atoms[0], targets: atoms[1], png: atoms[2], property: atoms[3]}, nil
}

// x11Owner holds a hidden window that owns the selection while an image is
// published.
type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  selectionAtoms

	mu   sync.RWMutex
	data []byte
}

func newX11Owner() (*x11Owner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &x11Owner{conn: conn, window: window, atoms: atoms}
	go o.serve()
	return o, nil
}

func (o *x11Owner) publish(data []byte) error {
	o.mu.Lock()
	o.data = append([]byte(nil), data...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *x11Owner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.data = nil
			o.mu.Unlock()
		}
	}
}

// selectionReply decides what a request for target gets. ok is false when
// the request must be refused.
func selectionReply(atoms selectionAtoms, target xproto.Atom, data []byte) (typ xproto.Atom, format byte, payload []byte, ok bool) {
	switch {
	case len(data) == 0:
		return 0, 0, nil, false
	case target == atoms.targets:
		return xproto.AtomAtom, 32, atomBytes(atoms.targets, atoms.png), true
	case target == atoms.png:
		return atoms.png, 8, data, true
	}
	return 0, 0, nil, false
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	data := o.data
	o.mu.RUnlock()

	typ, format, payload, ok := selectionReply(o.atoms, e.Target, data)
	if ok {
		length := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, payload)
	} else {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// fetch asks the current owner for image/png on a short lived connection,
// so a reply to our own window is never blocked by serve.
func (o *x11Owner) fetch() ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, o.atoms.png, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, errTargetUnavailable
		}
		if e.Property != o.atoms.property {
			continue
		}
		reply, perr := xproto.GetProperty(conn, true, window, o.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func atomBytes(atoms ...xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, a := range atoms {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}
