package httpclient

import (
	"context"
	"net/http"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

type adminAPI struct{ c *Client }

func (a adminAPI) call(ctx context.Context, op, method, path string, body, out any) error {
	return a.c.do(ctx, request{
		op:            op,
		method:        method,
		path:          path,
		body:          body,
		authenticated: true,
	}, out)
}

// fetchOne runs an admin call decoding a single entity.
func fetchOne[T any](ctx context.Context, a adminAPI, op, method, path string, body any) (*T, error) {
	var out T
	if err := a.call(ctx, op, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// fetchList runs an admin call decoding a collection. A missing collection decodes as empty.
func fetchList[T any](ctx context.Context, a adminAPI, op, path string) ([]T, error) {
	out := []T{}
	if err := a.call(ctx, op, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tasks

func (a adminAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	return fetchList[models.Task](ctx, a, "admin.ListTasks", "/api/admin/tasks")
}

func (a adminAPI) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	return fetchOne[models.Task](ctx, a, "admin.CreateTask", http.MethodPost, "/api/admin/tasks", input)
}

func (a adminAPI) UpdateTask(ctx context.Context, taskID string, patch models.TaskPatch) (*models.Task, error) {
	return fetchOne[models.Task](ctx, a, "admin.UpdateTask", http.MethodPatch, "/api/admin/tasks/"+taskID, patch)
}

func (a adminAPI) DeleteTask(ctx context.Context, taskID string) error {
	return a.call(ctx, "admin.DeleteTask", http.MethodDelete, "/api/admin/tasks/"+taskID, nil, nil)
}

func (a adminAPI) CompleteTask(ctx context.Context, taskID string) (*models.Task, error) {
	return fetchOne[models.Task](ctx, a, "admin.CompleteTask", http.MethodPost, "/api/admin/tasks/"+taskID+"/complete", nil)
}

// Teams

func (a adminAPI) ListTeams(ctx context.Context) ([]models.Team, error) {
	return fetchList[models.Team](ctx, a, "admin.ListTeams", "/api/admin/teams")
}

func (a adminAPI) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	return fetchOne[models.Team](ctx, a, "admin.GetTeam", http.MethodGet, "/api/admin/teams/"+teamID, nil)
}

func (a adminAPI) UpdateTeam(ctx context.Context, teamID string, patch models.TeamPatch) (*models.Team, error) {
	return fetchOne[models.Team](ctx, a, "admin.UpdateTeam", http.MethodPatch, "/api/admin/teams/"+teamID, patch)
}

func (a adminAPI) DeleteTeam(ctx context.Context, teamID string) error {
	return a.call(ctx, "admin.DeleteTeam", http.MethodDelete, "/api/admin/teams/"+teamID, nil, nil)
}

func (a adminAPI) VerifyPayment(ctx context.Context, teamID string) (*models.Team, error) {
	return fetchOne[models.Team](ctx, a, "admin.VerifyPayment", http.MethodPost, "/api/admin/teams/"+teamID+"/verify-payment", nil)
}

func (a adminAPI) UpdateMember(ctx context.Context, teamID, memberID string, patch models.MemberPatch) (*models.Member, error) {
	return fetchOne[models.Member](ctx, a, "admin.UpdateMember", http.MethodPatch, "/api/admin/teams/"+teamID+"/members/"+memberID, patch)
}

func (a adminAPI) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return fetchList[models.LeaderboardEntry](ctx, a, "admin.Leaderboard", "/api/admin/leaderboard")
}

// Problem statements

func (a adminAPI) ListProblemStatements(ctx context.Context) ([]models.ProblemStatement, error) {
	return fetchList[models.ProblemStatement](ctx, a, "admin.ListProblemStatements", "/api/admin/problem-statements")
}

func (a adminAPI) CreateProblemStatement(ctx context.Context, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	return fetchOne[models.ProblemStatement](ctx, a, "admin.CreateProblemStatement", http.MethodPost, "/api/admin/problem-statements", input)
}

func (a adminAPI) UpdateProblemStatement(ctx context.Context, id string, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	return fetchOne[models.ProblemStatement](ctx, a, "admin.UpdateProblemStatement", http.MethodPatch, "/api/admin/problem-statements/"+id, input)
}

func (a adminAPI) DeleteProblemStatement(ctx context.Context, id string) error {
	return a.call(ctx, "admin.DeleteProblemStatement", http.MethodDelete, "/api/admin/problem-statements/"+id, nil, nil)
}

// BulkUploadProblemStatements sends normalized CSV as a multipart file and
// returns the statements the server created.
func (a adminAPI) BulkUploadProblemStatements(ctx context.Context, csv []byte) ([]models.ProblemStatement, error) {
	out := []models.ProblemStatement{}
	err := a.c.do(ctx, request{
		op:     "admin.BulkUploadProblemStatements",
		method: http.MethodPost,
		path:   "/api/admin/problem-statements/bulk",
		form: &multipartForm{files: []formFile{{
			field:       "file",
			filename:    "problem_statements.csv",
			contentType: "text/csv",
			data:        csv,
		}}},
		authenticated: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Announcements

func (a adminAPI) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return fetchList[models.Announcement](ctx, a, "admin.ListAnnouncements", "/api/admin/announcements")
}

func (a adminAPI) CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error) {
	return fetchOne[models.Announcement](ctx, a, "admin.CreateAnnouncement", http.MethodPost, "/api/admin/announcements", input)
}

func (a adminAPI) UpdateAnnouncement(ctx context.Context, id string, input models.AnnouncementInput) (*models.Announcement, error) {
	return fetchOne[models.Announcement](ctx, a, "admin.UpdateAnnouncement", http.MethodPatch, "/api/admin/announcements/"+id, input)
}

func (a adminAPI) DeleteAnnouncement(ctx context.Context, id string) error {
	return a.call(ctx, "admin.DeleteAnnouncement", http.MethodDelete, "/api/admin/announcements/"+id, nil, nil)
}

// Gallery

func (a adminAPI) ListGallery(ctx context.Context, teamID string) ([]models.GalleryImage, error) {
	return fetchList[models.GalleryImage](ctx, a, "admin.ListGallery", "/api/admin/teams/"+teamID+"/gallery")
}

func (a adminAPI) UploadImage(ctx context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := a.c.do(ctx, request{
		op:     "admin.UploadImage",
		method: http.MethodPost,
		path:   "/api/admin/teams/" + teamID + "/gallery",
		form: &multipartForm{
			fields: map[string]string{"caption": upload.Caption},
			files: []formFile{{
				field:       "image",
				filename:    upload.Filename,
				contentType: upload.ContentType,
				data:        upload.Data,
			}},
		},
		authenticated: true,
	}, &img)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (a adminAPI) DeleteImage(ctx context.Context, teamID, imageID string) error {
	return a.call(ctx, "admin.DeleteImage", http.MethodDelete, "/api/admin/teams/"+teamID+"/gallery/"+imageID, nil, nil)
}

func (a adminAPI) Logout(ctx context.Context) error {
	return a.call(ctx, "admin.Logout", http.MethodPost, "/api/admin/logout", nil, nil)
}
