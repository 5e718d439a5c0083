package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"kasaba/contexts/audience-reach/notification-service/adapters/memory"
	"kasaba/contexts/audience-reach/notification-service/domain/entities"
	domainerrors "kasaba/contexts/audience-reach/notification-service/domain/errors"
	"kasaba/contexts/audience-reach/notification-service/ports"
	"kasaba/internal/shared/events"
)

type capturingPublisher struct {
	topics []string
	events []events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event events.Envelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func townDirectory() []entities.DirectoryUser {
	return []entities.DirectoryUser{
		{UserID: "user-center-1", Name: "Ali", LocationType: entities.LocationCenter, Role: ports.RoleUser},
		{UserID: "user-center-2", Name: "Fatma", LocationType: entities.LocationCenter, Role: ports.RoleUser},
		{UserID: "user-village-1", Name: "Hasan", LocationType: entities.LocationVillage, Role: ports.RoleUser},
		{UserID: "user-abroad-1", Name: "Zehra", LocationType: entities.LocationAbroad, Role: ports.RoleUser},
	}
}

func newNotificationUseCase(store *memory.Store, publisher ports.EventPublisher) NotificationUseCase {
	return NotificationUseCase{
		Notifications: store,
		Directory:     store,
		Publisher:     publisher,
		Clock:         store,
		IDGen:         store,
	}
}

var notifyAdmin = ports.Actor{UserID: "admin-1", Role: ports.RoleAdmin}

func TestResolveRecipientsIsDeterministic(t *testing.T) {
	store := memory.NewStore(townDirectory())
	uc := newNotificationUseCase(store, nil)

	cases := []struct {
		name   string
		target entities.Target
		want   []string
	}{
		{"single user", entities.UserTarget("user-village-1"), []string{"user-village-1"}},
		{"everyone", entities.AllTarget(), []string{"user-abroad-1", "user-center-1", "user-center-2", "user-village-1"}},
		{"center group", entities.GroupTarget(entities.LocationCenter), []string{"user-center-1", "user-center-2"}},
		{"abroad group", entities.GroupTarget(entities.LocationAbroad), []string{"user-abroad-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				got, err := uc.ResolveRecipients(context.Background(), tc.target)
				if err != nil {
					t.Fatalf("resolve failed: %v", err)
				}
				if !reflect.DeepEqual(got, tc.want) {
					t.Fatalf("run %d: got %v, want %v", i, got, tc.want)
				}
			}
		})
	}
}

func TestResolveRecipientsUnknownUserFails(t *testing.T) {
	store := memory.NewStore(townDirectory())
	uc := newNotificationUseCase(store, nil)

	if _, err := uc.ResolveRecipients(context.Background(), entities.UserTarget("no-such-user")); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user-not-found, got %v", err)
	}
	if _, err := uc.CreateNotification(context.Background(), notifyAdmin, entities.UserTarget("no-such-user"), "t", "m", entities.NotificationGeneral); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("creation with unknown user must fail, got %v", err)
	}
}

func TestCreateNotificationWritesReceiptsAndPublishes(t *testing.T) {
	store := memory.NewStore(townDirectory())
	publisher := &capturingPublisher{}
	uc := newNotificationUseCase(store, publisher)

	notification, err := uc.CreateNotification(
		context.Background(),
		notifyAdmin,
		entities.GroupTarget(entities.LocationCenter),
		"Water outage",
		"Water is off in the center between 09:00 and 13:00.",
		entities.NotificationAlert,
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if notification.RecipientCount != 2 {
		t.Fatalf("expected 2 recipients, got %d", notification.RecipientCount)
	}

	inbox, err := store.Inbox(context.Background(), "user-center-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(inbox) != 1 || inbox[0].IsRead {
		t.Fatalf("expected one unread inbox item, got %+v", inbox)
	}
	outside, err := store.Inbox(context.Background(), "user-village-1")
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(outside) != 0 {
		t.Fatalf("village user must not receive a center notification, got %d items", len(outside))
	}

	if len(publisher.topics) != 1 || publisher.topics[0] != NotificationCreatedTopic {
		t.Fatalf("expected one %s event, got %v", NotificationCreatedTopic, publisher.topics)
	}
	if publisher.events[0].EntityID != notification.NotificationID {
		t.Fatalf("event entity id %s, want %s", publisher.events[0].EntityID, notification.NotificationID)
	}
}

func TestCreateNotificationRequiresAdmin(t *testing.T) {
	store := memory.NewStore(townDirectory())
	uc := newNotificationUseCase(store, nil)

	user := ports.Actor{UserID: "user-center-1", Role: ports.RoleUser}
	if _, err := uc.CreateNotification(context.Background(), user, entities.AllTarget(), "t", "m", entities.NotificationGeneral); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := memory.NewStore(townDirectory())
	uc := newNotificationUseCase(store, nil)

	notification, err := uc.CreateNotification(
		context.Background(),
		notifyAdmin,
		entities.UserTarget("user-center-1"),
		"Reminder",
		"Council meets on Friday.",
		entities.NotificationAnnouncement,
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	recipient := ports.Actor{UserID: "user-center-1", Role: ports.RoleUser}
	for i := 0; i < 3; i++ {
		if err := uc.MarkRead(context.Background(), recipient, notification.NotificationID); err != nil {
			t.Fatalf("mark read attempt %d failed: %v", i, err)
		}
	}

	inbox, err := store.Inbox(context.Background(), recipient.UserID)
	if err != nil {
		t.Fatalf("inbox failed: %v", err)
	}
	if len(inbox) != 1 || !inbox[0].IsRead || inbox[0].ReadAt == nil {
		t.Fatalf("expected one read item with timestamp, got %+v", inbox)
	}

	// A user without a receipt cannot mark the notification.
	outsider := ports.Actor{UserID: "user-village-1", Role: ports.RoleUser}
	if err := uc.MarkRead(context.Background(), outsider, notification.NotificationID); !errors.Is(err, domainerrors.ErrNotificationNotFound) {
		t.Fatalf("expected not-found for non-recipient, got %v", err)
	}
}

func TestParseTarget(t *testing.T) {
	if target, ok := entities.ParseTarget("all"); !ok || target.Kind != entities.TargetAll {
		t.Fatalf("parse all: got %+v ok=%v", target, ok)
	}
	if target, ok := entities.ParseTarget("group:village"); !ok || target.Group != entities.LocationVillage {
		t.Fatalf("parse group: got %+v ok=%v", target, ok)
	}
	if target, ok := entities.ParseTarget("user-42"); !ok || target.UserID != "user-42" {
		t.Fatalf("parse user: got %+v ok=%v", target, ok)
	}
	if _, ok := entities.ParseTarget("group:moon"); ok {
		t.Fatal("unknown group must not parse")
	}
	if _, ok := entities.ParseTarget("  "); ok {
		t.Fatal("blank target must not parse")
	}
}
