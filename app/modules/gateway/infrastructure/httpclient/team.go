package httpclient

import (
	"context"
	"net/http"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

type teamAPI struct{ c *Client }

func (t teamAPI) get(ctx context.Context, op, path string, out any) error {
	return t.c.do(ctx, request{op: op, method: http.MethodGet, path: path, authenticated: true}, out)
}

func (t teamAPI) MyTeam(ctx context.Context) (*models.Team, error) {
	var team models.Team
	if err := t.get(ctx, "team.MyTeam", "/api/team/me", &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (t teamAPI) MyTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := t.get(ctx, "team.MyTasks", "/api/team/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

type submitBody struct {
	Notes string `json:"notes"`
}

func (t teamAPI) SubmitTask(ctx context.Context, taskID, notes string) (*models.Task, error) {
	var task models.Task
	err := t.c.do(ctx, request{
		op:            "team.SubmitTask",
		method:        http.MethodPost,
		path:          "/api/team/tasks/" + taskID + "/submit",
		body:          submitBody{Notes: notes},
		authenticated: true,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// MyProblemStatement returns nil without error when the team has not picked one.
func (t teamAPI) MyProblemStatement(ctx context.Context) (*models.ProblemStatement, error) {
	var ps *models.ProblemStatement
	if err := t.get(ctx, "team.MyProblemStatement", "/api/team/problem-statement", &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (t teamAPI) MyAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var out []models.Announcement
	if err := t.get(ctx, "team.MyAnnouncements", "/api/team/announcements", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t teamAPI) MyGallery(ctx context.Context) ([]models.GalleryImage, error) {
	var out []models.GalleryImage
	if err := t.get(ctx, "team.MyGallery", "/api/team/gallery", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t teamAPI) Logout(ctx context.Context) error {
	return t.c.do(ctx, request{
		op:            "team.Logout",
		method:        http.MethodPost,
		path:          "/api/team/logout",
		authenticated: true,
	}, nil)
}
