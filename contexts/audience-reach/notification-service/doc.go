// Package notificationservice owns town-wide announcements inside the
// audience-reach context. A notification is created once, its recipient set
// is resolved eagerly against the user directory, and every recipient gets
// an individual receipt carrying their read state.
package notificationservice
