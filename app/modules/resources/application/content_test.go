package resourcestore

import (
	"context"
	"sync"
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/app/eventbus"
	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/resources/infrastructure/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTeam_ExtractsProblemStatement(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(team)
	gw.MyTeamFn = func(context.Context) (*models.Team, error) {
		return &models.Team{
			ID:               "team-1",
			Title:            "Byte Me",
			ProblemStatement: &models.ProblemStatement{ID: "ps-1", Title: "Clean water"},
		}, nil
	}

	store.FetchTeam(ctx)

	c := store.Snapshot()
	require.NotNil(t, c.Team)
	require.NotNil(t, c.ProblemStatement)
	assert.Equal(t, "Clean water", c.ProblemStatement.Title)
	assert.Equal(t, 1, gw.Calls("Team.MyTeam"))
}

func TestFetchProblemStatements(t *testing.T) {
	ctx := context.Background()
	list := func(context.Context) ([]models.ProblemStatement, error) {
		return []models.ProblemStatement{{ID: "ps-1"}}, nil
	}

	tests := []struct {
		name     string
		identity *models.Identity
		want     string
	}{
		{name: "admin", identity: admin, want: "Admin.ListProblemStatements"},
		{name: "team", identity: team, want: "Public.ProblemStatements"},
		{name: "logged out", identity: nil, want: "Public.ProblemStatements"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, gw, _ := newTestStore(tt.identity)
			gw.ListProblemStatementsFn = list
			gw.ProblemStatementsFn = list

			store.FetchProblemStatements(ctx)

			assert.Equal(t, []string{tt.want}, gw.Trace())
			assert.Len(t, store.Snapshot().ProblemStatements, 1)
		})
	}
}

func TestBulkUploadProblemStatements(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(admin)
	var sent []byte
	gw.BulkUploadProblemStatementsFn = func(_ context.Context, csv []byte) ([]models.ProblemStatement, error) {
		sent = csv
		return []models.ProblemStatement{{ID: "ps-1", Code: "PS1"}, {ID: "ps-2", Code: "PS2"}}, nil
	}

	input := []byte("\ufeffTitle,Code,Domain\nGrid,PS1,Energy\n,,\nFarm,PS2,Agri\n")
	created, err := store.BulkUploadProblemStatements(ctx, "upload.csv", input)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Len(t, store.Snapshot().ProblemStatements, 2)

	rows, err := parsers.NewCSVParser().Parse(sent)
	require.NoError(t, err)
	assert.Equal(t, []models.ProblemStatementInput{
		{Code: "PS1", Title: "Grid", Domain: "Energy"},
		{Code: "PS2", Title: "Farm", Domain: "Agri"},
	}, rows)

	t.Run("unreadable file never reaches the server", func(t *testing.T) {
		store, gw, _ := newTestStore(admin)
		_, err := store.BulkUploadProblemStatements(ctx, "notes.txt", []byte("hello"))
		require.ErrorIs(t, err, parsers.ErrUnsupportedFile)
		_, err = store.BulkUploadProblemStatements(ctx, "ps.csv", []byte("title\nGrid\n"))
		require.ErrorIs(t, err, parsers.ErrMissingColumn)
		assert.Empty(t, gw.Trace())
		assert.NotEmpty(t, store.Error())
	})
}

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(admin)
	gw.ListAnnouncementsFn = func(context.Context) ([]models.Announcement, error) {
		return []models.Announcement{{ID: "a-1", Title: "Welcome"}}, nil
	}
	gw.CreateAnnouncementFn = func(_ context.Context, in models.AnnouncementInput) (*models.Announcement, error) {
		return &models.Announcement{ID: "a-2", Title: in.Title, Body: in.Body}, nil
	}
	gw.UpdateAnnouncementFn = func(_ context.Context, id string, in models.AnnouncementInput) (*models.Announcement, error) {
		return &models.Announcement{ID: id, Title: in.Title}, nil
	}

	store.FetchAnnouncements(ctx)
	_, err := store.CreateAnnouncement(ctx, models.AnnouncementInput{Title: "Lunch", Body: "Hall B"})
	require.NoError(t, err)
	_, err = store.UpdateAnnouncement(ctx, "a-1", models.AnnouncementInput{Title: "Welcome!"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteAnnouncement(ctx, "a-2"))

	list := store.Snapshot().Announcements
	require.Len(t, list, 1)
	assert.Equal(t, "Welcome!", list[0].Title)
}

func TestTeamsAndMembers(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(admin)
	gw.ListTeamsFn = func(context.Context) ([]models.Team, error) {
		return []models.Team{
			{ID: "team-1", Members: []models.Member{{ID: "m-1", TeamID: "team-1", Name: "Ada"}, {ID: "m-2", TeamID: "team-1", Name: "Lin"}}},
			{ID: "team-2"},
		}, nil
	}
	store.FetchTeams(ctx)
	before := store.Snapshot().Teams

	gw.UpdateMemberFn = func(_ context.Context, teamID, memberID string, patch models.MemberPatch) (*models.Member, error) {
		return &models.Member{ID: memberID, TeamID: teamID, Name: "Lin", AttendanceFlag: *patch.AttendanceFlag}, nil
	}
	present := true
	_, err := store.UpdateMember(ctx, "team-1", "m-2", models.MemberPatch{AttendanceFlag: &present})
	require.NoError(t, err)

	updated, ok := store.Snapshot().TeamByID("team-1")
	require.True(t, ok)
	assert.True(t, updated.Members[1].AttendanceFlag)
	assert.Equal(t, "m-1", updated.Members[0].ID)
	assert.False(t, before[0].Members[1].AttendanceFlag, "earlier snapshots are unchanged")

	gw.VerifyPaymentFn = func(_ context.Context, id string) (*models.Team, error) {
		return &models.Team{ID: id, PaymentVerified: true}, nil
	}
	_, err = store.VerifyPayment(ctx, "team-2")
	require.NoError(t, err)
	paid, _ := store.Snapshot().TeamByID("team-2")
	assert.True(t, paid.PaymentVerified)

	require.NoError(t, store.DeleteTeam(ctx, "team-2"))
	_, ok = store.Snapshot().TeamByID("team-2")
	assert.False(t, ok)
}

func TestGallery(t *testing.T) {
	ctx := context.Background()

	t.Run("team reads its own gallery", func(t *testing.T) {
		store, gw, _ := newTestStore(team)
		gw.MyGalleryFn = func(context.Context) ([]models.GalleryImage, error) {
			return []models.GalleryImage{{ID: "img-1", TeamID: "team-1"}}, nil
		}
		store.FetchGallery(ctx, "")
		assert.Len(t, store.Snapshot().Gallery["team-1"], 1)
	})

	t.Run("admin uploads and deletes", func(t *testing.T) {
		store, gw, _ := newTestStore(admin)
		gw.ListGalleryFn = func(_ context.Context, teamID string) ([]models.GalleryImage, error) {
			return []models.GalleryImage{{ID: "img-1", TeamID: teamID}}, nil
		}
		gw.UploadImageFn = func(_ context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error) {
			return &models.GalleryImage{ID: "img-2", TeamID: teamID, Caption: upload.Caption}, nil
		}
		store.FetchGallery(ctx, "team-3")
		_, err := store.UploadGalleryImage(ctx, "team-3", models.ImageUpload{Filename: "a.png", Data: []byte{1}, Caption: "demo"})
		require.NoError(t, err)
		require.NoError(t, store.DeleteGalleryImage(ctx, "team-3", "img-1"))

		images := store.Snapshot().Gallery["team-3"]
		require.Len(t, images, 1)
		assert.Equal(t, "img-2", images[0].ID)

		gw.ResetTrace()
		_, err = store.UploadGalleryImage(ctx, "team-3", models.ImageUpload{Filename: "empty.png"})
		require.ErrorIs(t, err, gateway.ErrValidation)
		assert.Empty(t, gw.Trace())
	})
}

func TestFetchLeaderboard(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(admin)
	gw.LeaderboardFn = func(context.Context) ([]models.LeaderboardEntry, error) {
		return []models.LeaderboardEntry{
			{TeamID: "2", TotalPoints: 80},
			{TeamID: "3", TotalPoints: 80},
			{TeamID: "1", TotalPoints: 50},
			{TeamID: "4", TotalPoints: 10},
		}, nil
	}
	store.FetchLeaderboard(ctx)

	board := store.Snapshot().Leaderboard
	require.Len(t, board, 4)
	for i, e := range board {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []string{"2", "3", "1", "4"}, []string{board[0].TeamID, board[1].TeamID, board[2].TeamID, board[3].TeamID})

	podium, rest := store.Podium()
	assert.Len(t, podium, 3)
	assert.Len(t, rest, 1)

	gw.ListTasksFn = tasksFn(models.Task{ID: "9", TeamID: "4", Status: models.TaskInReview, Points: 100})
	store.FetchTasks(ctx)
	gw.CompleteTaskFn = func(_ context.Context, id string) (*models.Task, error) {
		return &models.Task{ID: id, TeamID: "4", Status: models.TaskCompleted, Points: 100}, nil
	}
	_, err := store.CompleteTask(ctx, "9", "")
	require.NoError(t, err)
	assert.Equal(t, board, store.Snapshot().Leaderboard, "completing a task does not touch the leaderboard")
	assert.Equal(t, 1, gw.Calls("Admin.Leaderboard"))
}

func TestPreviewLeaderboard(t *testing.T) {
	ctx := context.Background()
	store, gw, _ := newTestStore(admin)
	gw.ListTeamsFn = func(context.Context) ([]models.Team, error) {
		return []models.Team{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}, nil
	}
	gw.ListTasksFn = tasksFn(
		models.Task{ID: "t1", TeamID: "1", Points: 30, Status: models.TaskCompleted},
		models.Task{ID: "t2", TeamID: "2", Points: 50, Status: models.TaskCompleted},
		models.Task{ID: "t3", TeamID: "1", Points: 90, Status: models.TaskInReview},
	)
	store.FetchTeams(ctx)
	store.FetchTasks(ctx)

	preview := store.PreviewLeaderboard()
	require.Len(t, preview, 2)
	assert.Equal(t, "2", preview[0].TeamID)
	assert.Equal(t, 50, preview[0].TotalPoints)
	assert.Equal(t, 1, preview[0].Rank)
}

func TestPublicActions(t *testing.T) {
	ctx := context.Background()
	store, gw, session := newTestStore(nil)
	gw.RegisterFn = func(_ context.Context, reg models.Registration) (*models.RegistrationReceipt, error) {
		return &models.RegistrationReceipt{TeamID: "team-9", ExternalCode: "HX-0009"}, nil
	}
	gw.ConfirmPaymentFn = func(context.Context, models.PaymentConfirmation) error {
		return gateway.NewError("public.ConfirmPayment", 404, "No team with that code")
	}

	receipt, err := store.Register(ctx, models.Registration{Title: "Null Pointers"})
	require.NoError(t, err)
	assert.Equal(t, "HX-0009", receipt.ExternalCode)

	err = store.ConfirmPayment(ctx, models.PaymentConfirmation{ExternalCode: "HX-0000"})
	require.ErrorIs(t, err, gateway.ErrNotFound)
	assert.Equal(t, "No team with that code", store.Error())
	assert.Zero(t, session.Calls())
}

type recordingNotifier struct {
	mu     sync.Mutex
	fields []string
}

func (r *recordingNotifier) Notify(_ context.Context, topic string, change eventbus.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = append(r.fields, topic+":"+change.Field)
}

func TestChangeNotifications(t *testing.T) {
	ctx := context.Background()
	gw := gateway.NewFakeGateway()
	bus := &recordingNotifier{}
	store := NewStore(gw, NewFakeSession(admin), bus, nil, nil, nil)
	gw.ListTasksFn = tasksFn(models.Task{ID: "1"})

	store.FetchTasks(ctx)
	store.FetchTeam(ctx)
	_, _ = store.SubmitTask(ctx, "1", "x")
	store.Clear(ctx)

	assert.Equal(t, []string{
		"resources.changed:tasks",
		"resources.changed:error",
		"resources.changed:all",
	}, bus.fields)
}
