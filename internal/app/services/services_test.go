package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/app/models/dto"
	"github.com/yigit/cems/internal/app/repositories"
	"github.com/yigit/cems/internal/app/repositories/memory"
	"github.com/yigit/cems/internal/pkg/apperrors"
	"github.com/yigit/cems/internal/pkg/auth"
)

type echoResponder struct{}

func (echoResponder) Respond(_ context.Context, q string) string { return "echo: " + q }

type recordingNotifier struct {
	mu     sync.Mutex
	states []models.RegistrationState
}

func (n *recordingNotifier) NotifyRegistration(s *models.RegistrationState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, *s)
}

type sentMail struct{ to, name, subject, response string }

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendContactResponse(toEmail, toName, subject, response string) error {
	m.sent = append(m.sent, sentMail{toEmail, toName, subject, response})
	return m.err
}

type memoryImages struct {
	saved   int
	deleted []string
}

func (m *memoryImages) SaveImage(fh *multipart.FileHeader, subPath string) (string, error) {
	m.saved++
	return fmt.Sprintf("/uploads/%s/%d-%s", subPath, m.saved, fh.Filename), nil
}

func (m *memoryImages) DeleteImage(url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

type fixture struct {
	svc      *Services
	notifier *recordingNotifier
	mailer   *recordingMailer
	images   *memoryImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{notifier: &recordingNotifier{}, mailer: &recordingMailer{}, images: &memoryImages{}}
	f.svc = NewServices(Dependencies{
		Repos: memory.NewRepositories(),
		JWTService: auth.NewJWTService(auth.JWTConfig{
			SecretKey:   "test-secret",
			TokenExp:    time.Hour,
			TokenIssuer: "cems.test",
		}),
		Responder: echoResponder{},
		Notifier:  f.notifier,
		Mailer:    f.mailer,
		Images:    f.images,
	})
	return f
}

func (f *fixture) signup(t *testing.T, name string, role models.RoleType) *models.User {
	t.Helper()
	ctx := context.Background()
	resp, err := f.svc.Auth.Signup(ctx, &dto.SignupRequest{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@college.edu",
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", name, err)
	}
	user, err := f.svc.Auth.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("authenticate %s: %v", name, err)
	}
	return user
}

func eventRequest(title string, capacity int) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:       title,
		Description: "About " + title,
		Category:    "technical",
		Date:        time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		Time:        "10:00 AM",
		Venue:       "Main Auditorium",
		Capacity:    &capacity,
	}
}

func strPtr(s string) *string { return &s }

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Auth.Signup(ctx, &dto.SignupRequest{Name: "Asha", Email: " Asha@College.edu ", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.User.Role != string(models.RoleStudent) {
		t.Errorf("default role = %q, want student", resp.User.Role)
	}
	if resp.User.Email != "asha@college.edu" {
		t.Errorf("email not normalized: %q", resp.User.Email)
	}
	if resp.TokenType != "Bearer" || resp.Token == "" {
		t.Errorf("unexpected token response: %+v", resp)
	}

	_, err = f.svc.Auth.Signup(ctx, &dto.SignupRequest{Name: "Asha", Email: "asha@college.edu", Password: "secret123"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate signup: expected conflict, got %v", err)
	}

	_, err = f.svc.Auth.Signup(ctx, &dto.SignupRequest{Name: "Bo", Email: "bo@college.edu", Password: "123"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("short password: expected validation error, got %v", err)
	}

	if _, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "asha@college.edu", Password: "wrong"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected invalid credentials, got %v", err)
	}
	if _, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "nobody@college.edu", Password: "secret123"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected invalid credentials, got %v", err)
	}

	login, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: "ASHA@college.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("login user = %d, want %d", login.User.ID, resp.User.ID)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)
	student := f.signup(t, "Sam Student", models.RoleStudent)

	if _, err := f.svc.Auth.Authenticate(ctx, "garbage"); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("garbage token: expected invalid token, got %v", err)
	}

	resp, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Email: student.Email, Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.svc.Auth.DeleteUser(ctx, admin, student.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	_, err = f.svc.Auth.Authenticate(ctx, resp.Token)
	if !errors.Is(err, apperrors.ErrUnauthorized) || err.Error() != "Not authorized, user not found" {
		t.Errorf("deleted user: got %v", err)
	}
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	f := newFixture(t)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)

	err := f.svc.Auth.DeleteUser(context.Background(), admin, admin.ID)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCreateEventDefaults(t *testing.T) {
	f := newFixture(t)
	member := f.signup(t, "Tech Club", models.RoleEventMember)

	req := eventRequest("Hackathon", 0)
	req.Capacity = nil
	event, err := f.svc.Events.CreateEvent(context.Background(), member, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if event.Capacity != models.DefaultEventCapacity {
		t.Errorf("capacity = %d", event.Capacity)
	}
	if event.College != models.DefaultEventCollege || event.Image != models.DefaultEventImage {
		t.Errorf("college/image defaults not applied: %q %q", event.College, event.Image)
	}
	if event.Organizer != member.Name {
		t.Errorf("organizer = %q, want creator name", event.Organizer)
	}
	if event.Status != models.StatusUpcoming {
		t.Errorf("status = %q", event.Status)
	}
	if event.CreatedBy == nil || event.CreatedBy.ID != member.ID {
		t.Errorf("creator not attached: %+v", event.CreatedBy)
	}

	bad := eventRequest("Bad date", 10)
	bad.Date = "next tuesday"
	if _, err := f.svc.Events.CreateEvent(context.Background(), member, bad); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("bad date: expected validation error, got %v", err)
	}
}

func TestUpdateEventOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.signup(t, "Owner Member", models.RoleEventMember)
	other := f.signup(t, "Other Member", models.RoleEventMember)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)

	event, err := f.svc.Events.CreateEvent(ctx, owner, eventRequest("Code Sprint", 50))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Events.UpdateEvent(ctx, other, event.ID, &dto.UpdateEventRequest{Title: strPtr("Hijacked")})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("other member: expected forbidden, got %v", err)
	}

	updated, err := f.svc.Events.UpdateEvent(ctx, owner, event.ID, &dto.UpdateEventRequest{Venue: strPtr("Innovation Hub")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Venue != "Innovation Hub" || updated.Title != "Code Sprint" {
		t.Errorf("partial merge wrong: %+v", updated)
	}

	updated, err = f.svc.Events.UpdateEvent(ctx, admin, event.ID, &dto.UpdateEventRequest{Status: strPtr("cancelled")})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Errorf("status = %q", updated.Status)
	}

	_, err = f.svc.Events.UpdateEvent(ctx, owner, event.ID, &dto.UpdateEventRequest{Category: strPtr("party")})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("bad category: expected validation error, got %v", err)
	}

	_, err = f.svc.Events.UpdateEvent(ctx, owner, event.ID+100, &dto.UpdateEventRequest{})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("missing event: expected not found, got %v", err)
	}
}

func TestRegistrationWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	member := f.signup(t, "Tech Club", models.RoleEventMember)
	alice := f.signup(t, "Alice Student", models.RoleStudent)
	bob := f.signup(t, "Bob Student", models.RoleStudent)

	event, err := f.svc.Events.CreateEvent(ctx, member, eventRequest("Robotics", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.svc.Registrations.Register(ctx, alice, event.ID, &dto.RegisterEventRequest{Phone: "555-0100"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.RegistrationCount != 1 || len(got.RegisteredUsers) != 1 {
		t.Fatalf("count = %d, registrants = %d", got.RegistrationCount, len(got.RegisteredUsers))
	}
	if got.RegisteredUsers[0].Phone != "555-0100" || got.RegisteredUsers[0].User.ID != alice.ID {
		t.Errorf("registration details lost: %+v", got.RegisteredUsers[0])
	}

	if _, err := f.svc.Registrations.Register(ctx, alice, event.ID, nil); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("duplicate: expected conflict, got %v", err)
	}
	if _, err := f.svc.Registrations.Register(ctx, bob, event.ID, nil); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Errorf("full: expected capacity error, got %v", err)
	}

	mine, err := f.svc.Registrations.ListRegisteredEvents(ctx, alice)
	if err != nil || mine.Count != 1 {
		t.Fatalf("registered events: %v %+v", err, mine)
	}

	state, err := f.svc.Registrations.Unregister(ctx, alice, event.ID)
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if state.RegistrationCount != 0 || state.Capacity != 1 {
		t.Errorf("state after unregister = %+v", state)
	}
	if _, err := f.svc.Registrations.Unregister(ctx, alice, event.ID); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("not registered: expected conflict, got %v", err)
	}

	if _, err := f.svc.Registrations.Register(ctx, bob, event.ID, nil); err != nil {
		t.Fatalf("freed seat: %v", err)
	}

	want := []int{1, 0, 1}
	if len(f.notifier.states) != len(want) {
		t.Fatalf("notifications = %+v", f.notifier.states)
	}
	for i, s := range f.notifier.states {
		if s.RegistrationCount != want[i] || s.EventID != event.ID {
			t.Errorf("notification %d = %+v", i, s)
		}
	}
}

func TestDeleteEventCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)
	student := f.signup(t, "Sam Student", models.RoleStudent)

	event, err := f.svc.Events.CreateEvent(ctx, admin, eventRequest("Debate", 10))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Registrations.Register(ctx, student, event.ID, nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := f.svc.Events.DeleteEvent(ctx, admin, event.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	profile, err := f.svc.Auth.GetProfile(ctx, student.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.RegisteredEvents) != 0 {
		t.Errorf("registered events survived delete: %d", len(profile.RegisteredEvents))
	}
	if _, err := f.svc.Events.GetEvent(ctx, event.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListEventsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	member := f.signup(t, "Tech Club", models.RoleEventMember)

	later := eventRequest("Dance Night", 10)
	later.Category = "cultural"
	later.Date = time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	for _, req := range []*dto.CreateEventRequest{later, eventRequest("AI Workshop Day", 10)} {
		if _, err := f.svc.Events.CreateEvent(ctx, member, req); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := f.svc.Events.ListEvents(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Count != 2 || all.Events[0].Title != "AI Workshop Day" {
		t.Errorf("expected date order, got %d events starting %q", all.Count, all.Events[0].Title)
	}

	cultural, _ := f.svc.Events.ListEvents(ctx, &dto.EventFilterRequest{Category: "cultural"})
	if cultural.Count != 1 || cultural.Events[0].Title != "Dance Night" {
		t.Errorf("category filter: %+v", cultural)
	}

	search, _ := f.svc.Events.ListEvents(ctx, &dto.EventFilterRequest{Search: "workshop"})
	if search.Count != 1 {
		t.Errorf("search filter: %d results", search.Count)
	}
}

func TestContactResponseSendsMail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)

	contact, err := f.svc.Contacts.Submit(ctx, &dto.ContactRequest{
		Name:      "Visitor",
		Email:     "visitor@example.com",
		IssueType: "event-inquiry",
		Subject:   "Parking",
		Message:   "Is there parking?",
	}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if contact.Status != models.ContactPending {
		t.Errorf("status = %q", contact.Status)
	}

	updated, err := f.svc.Contacts.Update(ctx, admin, contact.ID, &dto.UpdateContactRequest{
		Status:   strPtr("resolved"),
		Response: strPtr("Yes, behind the library."),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RespondedBy == nil || updated.RespondedBy.ID != admin.ID || updated.RespondedAt == nil {
		t.Errorf("responder not recorded: %+v", updated)
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0].to != "visitor@example.com" {
		t.Errorf("mail not sent: %+v", f.mailer.sent)
	}

	// Status-only updates do not mail
	if _, err := f.svc.Contacts.Update(ctx, admin, contact.ID, &dto.UpdateContactRequest{Status: strPtr("closed")}); err != nil {
		t.Fatalf("status update: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("unexpected mail: %+v", f.mailer.sent)
	}

	f.mailer.err = errors.New("smtp down")
	if _, err := f.svc.Contacts.Update(ctx, admin, contact.ID, &dto.UpdateContactRequest{Response: strPtr("Again")}); err != nil {
		t.Errorf("mail failure leaked into update: %v", err)
	}

	stats, err := f.svc.Contacts.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 || stats.ByStatus.Closed != 1 || stats.ByIssueType["event-inquiry"] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	page, err := f.svc.Contacts.List(ctx, &dto.ContactFilterRequest{Page: 1, Limit: 50})
	if err != nil || len(page.Contacts) != 1 || page.Pagination.TotalItems != 1 {
		t.Errorf("list: %v %+v", err, page)
	}
}

func TestChatConversationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.signup(t, "Chat Owner", models.RoleStudent)
	other := f.signup(t, "Other Student", models.RoleStudent)
	admin := f.signup(t, "Root Admin", models.RoleAdmin)

	started, err := f.svc.Chat.Start(ctx, &owner.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !strings.HasPrefix(started.ConversationID, "chat_") || len(started.Messages) != 1 || started.Messages[0].Content != Greeting {
		t.Fatalf("unexpected start: %+v", started)
	}

	msg := "What technical events are coming up this month?"
	resp, err := f.svc.Chat.SendMessage(ctx, &dto.SendMessageRequest{ConversationID: started.ConversationID, Message: msg}, &owner.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(resp.Messages) != 3 || resp.Messages[2].Content != "echo: "+msg {
		t.Fatalf("transcript = %+v", resp.Messages)
	}

	if _, err := f.svc.Chat.SendMessage(ctx, &dto.SendMessageRequest{ConversationID: started.ConversationID, Message: "thanks"}, &owner.ID); err != nil {
		t.Fatalf("second send: %v", err)
	}
	conv, err := f.svc.Chat.Get(ctx, started.ConversationID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if conv.Title != "What technical events are comi..." {
		t.Errorf("title = %q", conv.Title)
	}

	if _, err := f.svc.Chat.History(ctx, other, owner.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign history: expected forbidden, got %v", err)
	}
	history, err := f.svc.Chat.History(ctx, admin, owner.ID)
	if err != nil || history.Count != 1 {
		t.Errorf("admin history: %v %+v", err, history)
	}

	if err := f.svc.Chat.Delete(ctx, other, started.ConversationID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("foreign delete: expected forbidden, got %v", err)
	}
	if err := f.svc.Chat.Delete(ctx, owner, started.ConversationID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if _, err := f.svc.Chat.Get(ctx, started.ConversationID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestSendMessageCreatesGuestConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	someone := f.signup(t, "Any Student", models.RoleStudent)

	resp, err := f.svc.Chat.SendMessage(ctx, &dto.SendMessageRequest{ConversationID: "chat_1_abc", Message: "help"}, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(resp.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(resp.Messages))
	}
	conv, _ := f.svc.Chat.Get(ctx, "chat_1_abc")
	if conv.Title != "help" || conv.UserID != nil {
		t.Errorf("conversation = %+v", conv)
	}

	if _, err := f.svc.Chat.SendMessage(ctx, &dto.SendMessageRequest{ConversationID: "chat_1_abc", Message: "  "}, nil); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("blank message: expected bad request, got %v", err)
	}

	if err := f.svc.Chat.Delete(ctx, someone, "chat_1_abc"); err != nil {
		t.Errorf("guest conversation delete: %v", err)
	}
}

func TestSweepIdle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.Chat.Start(ctx, nil); err != nil {
		t.Fatalf("start: %v", err)
	}

	removed, err := f.svc.Chat.SweepIdle(ctx, time.Hour)
	if err != nil || removed != 0 {
		t.Fatalf("fresh sweep: removed %d, err %v", removed, err)
	}

	f.svc.Chat.(*chatServiceImpl).now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err = f.svc.Chat.SweepIdle(ctx, time.Hour)
	if err != nil || removed != 1 {
		t.Errorf("idle sweep: removed %d, err %v", removed, err)
	}
}

func TestUploadEventImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.signup(t, "Owner Member", models.RoleEventMember)
	other := f.signup(t, "Other Member", models.RoleEventMember)

	event, err := f.svc.Events.CreateEvent(ctx, owner, eventRequest("Poster Day", 10))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Events.UploadImage(ctx, other, event.ID, &multipart.FileHeader{Filename: "x.png", Size: 1})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner upload err = %v", err)
	}
	if f.images.saved != 0 {
		t.Fatal("image stored before the ownership check")
	}

	first, err := f.svc.Events.UploadImage(ctx, owner, event.ID, &multipart.FileHeader{Filename: "a.png", Size: 1})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if first.Image != "/uploads/events/1-a.png" {
		t.Fatalf("image = %q", first.Image)
	}

	second, err := f.svc.Events.UploadImage(ctx, owner, event.ID, &multipart.FileHeader{Filename: "b.png", Size: 1})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Image != "/uploads/events/2-b.png" {
		t.Fatalf("image = %q", second.Image)
	}
	if got := f.images.deleted; len(got) != 2 || got[0] != models.DefaultEventImage || got[1] != first.Image {
		t.Fatalf("deleted = %v", got)
	}

	_, err = f.svc.Events.UploadImage(ctx, owner, 999, &multipart.FileHeader{Filename: "c.png", Size: 1})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("missing event err = %v", err)
	}
}

// vanishingEvents loses every event between the registration commit and the reload
type vanishingEvents struct {
	repositories.IEventRepository
}

func (vanishingEvents) GetByID(context.Context, int64) (*models.Event, error) {
	return nil, apperrors.ErrEventNotFound
}

func TestRegisterSucceedsWhenReloadFails(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	student := &models.User{Name: "Sam", Email: "sam@college.edu", Password: "x", RoleType: models.RoleStudent}
	if err := repos.Users.Create(ctx, student); err != nil {
		t.Fatal(err)
	}
	event := &models.Event{Title: "Expo", Description: "d", Category: models.CategoryTechnical, Date: time.Now().AddDate(0, 0, 7), Time: "9 AM", Venue: "Hall", Capacity: 3, Status: models.StatusUpcoming}
	if err := repos.Events.Create(ctx, event); err != nil {
		t.Fatal(err)
	}

	notifier := &recordingNotifier{}
	svc := NewRegistrationService(repos.Registrations, vanishingEvents{repos.Events}, notifier, zerolog.Nop())

	got, err := svc.Register(ctx, student, event.ID, &dto.RegisterEventRequest{})
	if err != nil {
		t.Fatalf("committed registration reported as %v", err)
	}
	if got.ID != event.ID || got.RegistrationCount != 1 || got.Capacity != 3 {
		t.Errorf("event = %+v", got)
	}
	if len(notifier.states) != 1 || notifier.states[0].Version != 1 {
		t.Errorf("notifications = %+v", notifier.states)
	}
}
