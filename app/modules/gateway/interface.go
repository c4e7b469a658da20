// Package gateway defines the contract between the client stores and the remote
// portal API. The stores only ever talk to these interfaces.
package gateway

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// AuthAPI covers login and session verification.
type AuthAPI interface {
	Login(ctx context.Context, role models.Role, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	VerifySession(ctx context.Context) (*models.SessionCheck, error)
}

// AdminAPI is only callable with an admin credential.
type AdminAPI interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	CompleteTask(ctx context.Context, taskID string) (*models.Task, error)

	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	UpdateTeam(ctx context.Context, teamID string, patch models.TeamPatch) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error
	VerifyPayment(ctx context.Context, teamID string) (*models.Team, error)
	UpdateMember(ctx context.Context, teamID, memberID string, patch models.MemberPatch) (*models.Member, error)

	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)

	ListProblemStatements(ctx context.Context) ([]models.ProblemStatement, error)
	CreateProblemStatement(ctx context.Context, input models.ProblemStatementInput) (*models.ProblemStatement, error)
	UpdateProblemStatement(ctx context.Context, id string, input models.ProblemStatementInput) (*models.ProblemStatement, error)
	DeleteProblemStatement(ctx context.Context, id string) error
	BulkUploadProblemStatements(ctx context.Context, csv []byte) ([]models.ProblemStatement, error)

	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id string, input models.AnnouncementInput) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error

	ListGallery(ctx context.Context, teamID string) ([]models.GalleryImage, error)
	UploadImage(ctx context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, teamID, imageID string) error

	Logout(ctx context.Context) error
}

// TeamAPI is scoped to the calling team's own data.
type TeamAPI interface {
	MyTeam(ctx context.Context) (*models.Team, error)
	MyTasks(ctx context.Context) ([]models.Task, error)
	SubmitTask(ctx context.Context, taskID, notes string) (*models.Task, error)
	MyProblemStatement(ctx context.Context) (*models.ProblemStatement, error)
	MyAnnouncements(ctx context.Context) ([]models.Announcement, error)
	MyGallery(ctx context.Context) ([]models.GalleryImage, error)
	Logout(ctx context.Context) error
}

// PublicAPI needs no credential.
type PublicAPI interface {
	ProblemStatements(ctx context.Context) ([]models.ProblemStatement, error)
	Register(ctx context.Context, registration models.Registration) (*models.RegistrationReceipt, error)
	ConfirmPayment(ctx context.Context, confirmation models.PaymentConfirmation) error
}

// Gateway aggregates the role namespaces and owns the credential.
type Gateway interface {
	Auth() AuthAPI
	Admin() AdminAPI
	Team() TeamAPI
	Public() PublicAPI

	// ClearCredentials drops the stored credential locally.
	ClearCredentials(ctx context.Context) error
	// HasCredential reports whether an unexpired credential is held.
	HasCredential() bool
}
