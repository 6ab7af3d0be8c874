//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = "/org/freedesktop/Notifications"
	appName = "wavecast"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the notification service on the session bus. Without a
// session bus the returned notifier drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // no session bus, no notifications
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

// Notify calls
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout).
func (n *busNotifier) Notify(notif Notification) (uint32, error) {
	var id uint32
	err := n.obj.Call(busName+".Notify", 0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints(notif),
		notif.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (n *busNotifier) Close(id uint32) error {
	return n.obj.Call(busName+".CloseNotification", 0, id).Err
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Transient {
		h["transient"] = dbus.MakeVariant(true)
	}
	if n.Icon != "" {
		h["image-path"] = dbus.MakeVariant(n.Icon)
	}
	return h
}
