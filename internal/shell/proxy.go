// Package shell proxies the GNOME Shell extensions service on the session
// bus.
package shell

import (
	"fmt"
	"strconv"

	"github.com/godbus/dbus/v5"

	"github.com/gext-cli/gext/core"
)

const (
	busName       = "org.gnome.Shell"
	objectPath    = "/org/gnome/Shell"
	extensionsIfc = "org.gnome.Shell.Extensions"
)

// Proxy is the live session-bus implementation of core.ShellProxy.
type Proxy struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Compile-time interface implementation check.
var _ core.ShellProxy = (*Proxy)(nil)

// Connect opens a session-bus connection to the shell. Returns
// core.ErrNoSession when no session bus is reachable.
func Connect() (*Proxy, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNoSession, err)
	}
	return &Proxy{conn: conn, obj: conn.Object(busName, objectPath)}, nil
}

// Close releases the bus connection.
func (p *Proxy) Close() error {
	return p.conn.Close()
}

// ListExtensions returns the extensions known to the running session,
// keyed by UUID.
func (p *Proxy) ListExtensions() (map[string]core.Extension, error) {
	var raw map[string]map[string]dbus.Variant
	call := p.obj.Call(extensionsIfc+".ListExtensions", 0)
	if err := call.Store(&raw); err != nil {
		return nil, fmt.Errorf("%w: ListExtensions: %v", core.ErrRemote, err)
	}

	out := make(map[string]core.Extension, len(raw))
	for uuid, props := range raw {
		out[uuid] = decodeExtension(uuid, props)
	}
	return out, nil
}

// ReloadExtension asks the shell to reload the extension. No return value
// is consumed.
func (p *Proxy) ReloadExtension(uuid string) error {
	if call := p.obj.Call(extensionsIfc+".ReloadExtension", 0, uuid); call.Err != nil {
		return fmt.Errorf("%w: ReloadExtension: %v", core.ErrRemote, call.Err)
	}
	return nil
}

// ShellVersion reports the running shell's version string.
func (p *Proxy) ShellVersion() (string, error) {
	prop, err := p.obj.GetProperty(extensionsIfc + ".ShellVersion")
	if err != nil {
		return "", fmt.Errorf("%w: ShellVersion: %v", core.ErrRemote, err)
	}
	version, ok := prop.Value().(string)
	if !ok {
		return "", fmt.Errorf("%w: ShellVersion: unexpected type %T", core.ErrRemote, prop.Value())
	}
	return version, nil
}

// decodeExtension converts one ListExtensions record. The shell sends
// state and type as doubles and the version as either a double or a
// string depending on the extension's metadata.
func decodeExtension(uuid string, props map[string]dbus.Variant) core.Extension {
	ext := core.Extension{UUID: uuid}
	if s, ok := variantString(props["uuid"]); ok && s != "" {
		ext.UUID = s
	}
	ext.Name, _ = variantString(props["name"])
	ext.Description, _ = variantString(props["description"])
	ext.Link, _ = variantString(props["url"])
	ext.Path, _ = variantString(props["path"])
	ext.Error, _ = variantString(props["error"])
	ext.Version = variantVersion(props["version"])
	if n, ok := variantNumber(props["state"]); ok {
		ext.State = core.State(int(n))
	}
	if n, ok := variantNumber(props["type"]); ok {
		ext.Type = core.Type(int(n))
	}
	return ext
}

func variantString(v dbus.Variant) (string, bool) {
	s, ok := v.Value().(string)
	return s, ok
}

func variantNumber(v dbus.Variant) (float64, bool) {
	switch n := v.Value().(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func variantVersion(v dbus.Variant) string {
	if s, ok := variantString(v); ok {
		return s
	}
	if n, ok := variantNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
