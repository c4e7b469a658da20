package gateway

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// FakeGateway is a programmable Gateway for tests. Every call is appended to the
// trace as "<Namespace>.<Method>" before the matching Fn runs. Unset Fns return
// zero values.
type FakeGateway struct {
	mu    sync.Mutex
	trace []string

	LoginFn         func(ctx context.Context, role models.Role, username string, password string) (*models.LoginResponse, error)
	AuthLogoutFn    func(ctx context.Context) error
	VerifySessionFn func(ctx context.Context) (*models.SessionCheck, error)

	ListTasksFn                   func(ctx context.Context) ([]models.Task, error)
	CreateTaskFn                  func(ctx context.Context, input models.TaskInput) (*models.Task, error)
	UpdateTaskFn                  func(ctx context.Context, taskID string, patch models.TaskPatch) (*models.Task, error)
	DeleteTaskFn                  func(ctx context.Context, taskID string) error
	CompleteTaskFn                func(ctx context.Context, taskID string) (*models.Task, error)
	ListTeamsFn                   func(ctx context.Context) ([]models.Team, error)
	GetTeamFn                     func(ctx context.Context, teamID string) (*models.Team, error)
	UpdateTeamFn                  func(ctx context.Context, teamID string, patch models.TeamPatch) (*models.Team, error)
	DeleteTeamFn                  func(ctx context.Context, teamID string) error
	VerifyPaymentFn               func(ctx context.Context, teamID string) (*models.Team, error)
	UpdateMemberFn                func(ctx context.Context, teamID string, memberID string, patch models.MemberPatch) (*models.Member, error)
	LeaderboardFn                 func(ctx context.Context) ([]models.LeaderboardEntry, error)
	ListProblemStatementsFn       func(ctx context.Context) ([]models.ProblemStatement, error)
	CreateProblemStatementFn      func(ctx context.Context, input models.ProblemStatementInput) (*models.ProblemStatement, error)
	UpdateProblemStatementFn      func(ctx context.Context, id string, input models.ProblemStatementInput) (*models.ProblemStatement, error)
	DeleteProblemStatementFn      func(ctx context.Context, id string) error
	BulkUploadProblemStatementsFn func(ctx context.Context, csv []byte) ([]models.ProblemStatement, error)
	ListAnnouncementsFn           func(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncementFn          func(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error)
	UpdateAnnouncementFn          func(ctx context.Context, id string, input models.AnnouncementInput) (*models.Announcement, error)
	DeleteAnnouncementFn          func(ctx context.Context, id string) error
	ListGalleryFn                 func(ctx context.Context, teamID string) ([]models.GalleryImage, error)
	UploadImageFn                 func(ctx context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error)
	DeleteImageFn                 func(ctx context.Context, teamID string, imageID string) error
	AdminLogoutFn                 func(ctx context.Context) error

	MyTeamFn             func(ctx context.Context) (*models.Team, error)
	MyTasksFn            func(ctx context.Context) ([]models.Task, error)
	SubmitTaskFn         func(ctx context.Context, taskID string, notes string) (*models.Task, error)
	MyProblemStatementFn func(ctx context.Context) (*models.ProblemStatement, error)
	MyAnnouncementsFn    func(ctx context.Context) ([]models.Announcement, error)
	MyGalleryFn          func(ctx context.Context) ([]models.GalleryImage, error)
	TeamLogoutFn         func(ctx context.Context) error

	ProblemStatementsFn func(ctx context.Context) ([]models.ProblemStatement, error)
	RegisterFn          func(ctx context.Context, registration models.Registration) (*models.RegistrationReceipt, error)
	ConfirmPaymentFn    func(ctx context.Context, confirmation models.PaymentConfirmation) error

	ClearCredentialsFn func(ctx context.Context) error
	HasCredentialFn    func() bool
}

// NewFakeGateway returns a fake with no behaviour programmed.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{trace: []string{}}
}

func (f *FakeGateway) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns a copy of the recorded calls.
func (f *FakeGateway) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Calls counts how often step was recorded.
func (f *FakeGateway) Calls(step string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.trace {
		if s == step {
			n++
		}
	}
	return n
}

// ResetTrace forgets previously recorded calls.
func (f *FakeGateway) ResetTrace() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = []string{}
}

func (f *FakeGateway) Auth() AuthAPI     { return fakeAuth{f} }
func (f *FakeGateway) Admin() AdminAPI   { return fakeAdmin{f} }
func (f *FakeGateway) Team() TeamAPI     { return fakeTeam{f} }
func (f *FakeGateway) Public() PublicAPI { return fakePublic{f} }

func (f *FakeGateway) ClearCredentials(ctx context.Context) error {
	f.record("ClearCredentials")
	if f.ClearCredentialsFn != nil {
		return f.ClearCredentialsFn(ctx)
	}
	return nil
}

// HasCredential defaults to true so restored sessions survive unless a test says otherwise.
// It is not traced.
func (f *FakeGateway) HasCredential() bool {
	if f.HasCredentialFn != nil {
		return f.HasCredentialFn()
	}
	return true
}

type (
	fakeAuth   struct{ f *FakeGateway }
	fakeAdmin  struct{ f *FakeGateway }
	fakeTeam   struct{ f *FakeGateway }
	fakePublic struct{ f *FakeGateway }
)

func (a fakeAuth) Login(ctx context.Context, role models.Role, username string, password string) (*models.LoginResponse, error) {
	a.f.record("Auth.Login")
	if a.f.LoginFn != nil {
		return a.f.LoginFn(ctx, role, username, password)
	}
	return nil, nil
}

func (a fakeAuth) Logout(ctx context.Context) error {
	a.f.record("Auth.Logout")
	if a.f.AuthLogoutFn != nil {
		return a.f.AuthLogoutFn(ctx)
	}
	return nil
}

func (a fakeAuth) VerifySession(ctx context.Context) (*models.SessionCheck, error) {
	a.f.record("Auth.VerifySession")
	if a.f.VerifySessionFn != nil {
		return a.f.VerifySessionFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) ListTasks(ctx context.Context) ([]models.Task, error) {
	a.f.record("Admin.ListTasks")
	if a.f.ListTasksFn != nil {
		return a.f.ListTasksFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	a.f.record("Admin.CreateTask")
	if a.f.CreateTaskFn != nil {
		return a.f.CreateTaskFn(ctx, input)
	}
	return nil, nil
}

func (a fakeAdmin) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (*models.Task, error) {
	a.f.record("Admin.UpdateTask")
	if a.f.UpdateTaskFn != nil {
		return a.f.UpdateTaskFn(ctx, taskID, patch)
	}
	return nil, nil
}

func (a fakeAdmin) DeleteTask(ctx context.Context, taskID string) error {
	a.f.record("Admin.DeleteTask")
	if a.f.DeleteTaskFn != nil {
		return a.f.DeleteTaskFn(ctx, taskID)
	}
	return nil
}

func (a fakeAdmin) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	a.f.record("Admin.CompleteTask")
	if a.f.CompleteTaskFn != nil {
		return a.f.CompleteTaskFn(ctx, taskID)
	}
	return nil, nil
}

func (a fakeAdmin) ListTeams(ctx context.Context) ([]models.Team, error) {
	a.f.record("Admin.ListTeams")
	if a.f.ListTeamsFn != nil {
		return a.f.ListTeamsFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	a.f.record("Admin.GetTeam")
	if a.f.GetTeamFn != nil {
		return a.f.GetTeamFn(ctx, teamID)
	}
	return nil, nil
}

func (a fakeAdmin) UpdateTeam(ctx context.Context, teamID string, patch models.TeamPatch) (*models.Team, error) {
	a.f.record("Admin.UpdateTeam")
	if a.f.UpdateTeamFn != nil {
		return a.f.UpdateTeamFn(ctx, teamID, patch)
	}
	return nil, nil
}

func (a fakeAdmin) DeleteTeam(ctx context.Context, teamID string) error {
	a.f.record("Admin.DeleteTeam")
	if a.f.DeleteTeamFn != nil {
		return a.f.DeleteTeamFn(ctx, teamID)
	}
	return nil
}

func (a fakeAdmin) VerifyPayment(ctx context.Context, teamID string) (*models.Team, error) {
	a.f.record("Admin.VerifyPayment")
	if a.f.VerifyPaymentFn != nil {
		return a.f.VerifyPaymentFn(ctx, teamID)
	}
	return nil, nil
}

func (a fakeAdmin) UpdateMember(ctx context.Context, teamID string, memberID string, patch models.MemberPatch) (*models.Member, error) {
	a.f.record("Admin.UpdateMember")
	if a.f.UpdateMemberFn != nil {
		return a.f.UpdateMemberFn(ctx, teamID, memberID, patch)
	}
	return nil, nil
}

func (a fakeAdmin) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	a.f.record("Admin.Leaderboard")
	if a.f.LeaderboardFn != nil {
		return a.f.LeaderboardFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) ListProblemStatements(ctx context.Context) ([]models.ProblemStatement, error) {
	a.f.record("Admin.ListProblemStatements")
	if a.f.ListProblemStatementsFn != nil {
		return a.f.ListProblemStatementsFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) CreateProblemStatement(ctx context.Context, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	a.f.record("Admin.CreateProblemStatement")
	if a.f.CreateProblemStatementFn != nil {
		return a.f.CreateProblemStatementFn(ctx, input)
	}
	return nil, nil
}

func (a fakeAdmin) UpdateProblemStatement(ctx context.Context, id string, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	a.f.record("Admin.UpdateProblemStatement")
	if a.f.UpdateProblemStatementFn != nil {
		return a.f.UpdateProblemStatementFn(ctx, id, input)
	}
	return nil, nil
}

func (a fakeAdmin) DeleteProblemStatement(ctx context.Context, id string) error {
	a.f.record("Admin.DeleteProblemStatement")
	if a.f.DeleteProblemStatementFn != nil {
		return a.f.DeleteProblemStatementFn(ctx, id)
	}
	return nil
}

func (a fakeAdmin) BulkUploadProblemStatements(ctx context.Context, csv []byte) ([]models.ProblemStatement, error) {
	a.f.record("Admin.BulkUploadProblemStatements")
	if a.f.BulkUploadProblemStatementsFn != nil {
		return a.f.BulkUploadProblemStatementsFn(ctx, csv)
	}
	return nil, nil
}

func (a fakeAdmin) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	a.f.record("Admin.ListAnnouncements")
	if a.f.ListAnnouncementsFn != nil {
		return a.f.ListAnnouncementsFn(ctx)
	}
	return nil, nil
}

func (a fakeAdmin) CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error) {
	a.f.record("Admin.CreateAnnouncement")
	if a.f.CreateAnnouncementFn != nil {
		return a.f.CreateAnnouncementFn(ctx, input)
	}
	return nil, nil
}

func (a fakeAdmin) UpdateAnnouncement(ctx context.Context, id string, input models.AnnouncementInput) (*models.Announcement, error) {
	a.f.record("Admin.UpdateAnnouncement")
	if a.f.UpdateAnnouncementFn != nil {
		return a.f.UpdateAnnouncementFn(ctx, id, input)
	}
	return nil, nil
}

func (a fakeAdmin) DeleteAnnouncement(ctx context.Context, id string) error {
	a.f.record("Admin.DeleteAnnouncement")
	if a.f.DeleteAnnouncementFn != nil {
		return a.f.DeleteAnnouncementFn(ctx, id)
	}
	return nil
}

func (a fakeAdmin) ListGallery(ctx context.Context, teamID string) ([]models.GalleryImage, error) {
	a.f.record("Admin.ListGallery")
	if a.f.ListGalleryFn != nil {
		return a.f.ListGalleryFn(ctx, teamID)
	}
	return nil, nil
}

func (a fakeAdmin) UploadImage(ctx context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error) {
	a.f.record("Admin.UploadImage")
	if a.f.UploadImageFn != nil {
		return a.f.UploadImageFn(ctx, teamID, upload)
	}
	return nil, nil
}

func (a fakeAdmin) DeleteImage(ctx context.Context, teamID string, imageID string) error {
	a.f.record("Admin.DeleteImage")
	if a.f.DeleteImageFn != nil {
		return a.f.DeleteImageFn(ctx, teamID, imageID)
	}
	return nil
}

func (a fakeAdmin) Logout(ctx context.Context) error {
	a.f.record("Admin.Logout")
	if a.f.AdminLogoutFn != nil {
		return a.f.AdminLogoutFn(ctx)
	}
	return nil
}

func (a fakeTeam) MyTeam(ctx context.Context) (*models.Team, error) {
	a.f.record("Team.MyTeam")
	if a.f.MyTeamFn != nil {
		return a.f.MyTeamFn(ctx)
	}
	return nil, nil
}

func (a fakeTeam) MyTasks(ctx context.Context) ([]models.Task, error) {
	a.f.record("Team.MyTasks")
	if a.f.MyTasksFn != nil {
		return a.f.MyTasksFn(ctx)
	}
	return nil, nil
}

func (a fakeTeam) SubmitTask(ctx context.Context, taskID string, notes string) (*models.Task, error) {
	a.f.record("Team.SubmitTask")
	if a.f.SubmitTaskFn != nil {
		return a.f.SubmitTaskFn(ctx, taskID, notes)
	}
	return nil, nil
}

func (a fakeTeam) MyProblemStatement(ctx context.Context) (*models.ProblemStatement, error) {
	a.f.record("Team.MyProblemStatement")
	if a.f.MyProblemStatementFn != nil {
		return a.f.MyProblemStatementFn(ctx)
	}
	return nil, nil
}

func (a fakeTeam) MyAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	a.f.record("Team.MyAnnouncements")
	if a.f.MyAnnouncementsFn != nil {
		return a.f.MyAnnouncementsFn(ctx)
	}
	return nil, nil
}

func (a fakeTeam) MyGallery(ctx context.Context) ([]models.GalleryImage, error) {
	a.f.record("Team.MyGallery")
	if a.f.MyGalleryFn != nil {
		return a.f.MyGalleryFn(ctx)
	}
	return nil, nil
}

func (a fakeTeam) Logout(ctx context.Context) error {
	a.f.record("Team.Logout")
	if a.f.TeamLogoutFn != nil {
		return a.f.TeamLogoutFn(ctx)
	}
	return nil
}

func (a fakePublic) ProblemStatements(ctx context.Context) ([]models.ProblemStatement, error) {
	a.f.record("Public.ProblemStatements")
	if a.f.ProblemStatementsFn != nil {
		return a.f.ProblemStatementsFn(ctx)
	}
	return nil, nil
}

func (a fakePublic) Register(ctx context.Context, registration models.Registration) (*models.RegistrationReceipt, error) {
	a.f.record("Public.Register")
	if a.f.RegisterFn != nil {
		return a.f.RegisterFn(ctx, registration)
	}
	return nil, nil
}

func (a fakePublic) ConfirmPayment(ctx context.Context, confirmation models.PaymentConfirmation) error {
	a.f.record("Public.ConfirmPayment")
	if a.f.ConfirmPaymentFn != nil {
		return a.f.ConfirmPaymentFn(ctx, confirmation)
	}
	return nil
}

var (
	_ Gateway   = (*FakeGateway)(nil)
	_ AuthAPI   = fakeAuth{}
	_ AdminAPI  = fakeAdmin{}
	_ TeamAPI   = fakeTeam{}
	_ PublicAPI = fakePublic{}
)
