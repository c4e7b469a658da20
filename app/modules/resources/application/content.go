package resourcestore

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/resources/infrastructure/parsers"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
)

// FetchAnnouncements loads announcements for either role.
func (s *Store) FetchAnnouncements(ctx context.Context) {
	fetch(ctx, s, "FetchAnnouncements", "announcements",
		func(a access) func(context.Context) ([]models.Announcement, error) {
			switch {
			case a.is(models.RoleAdmin):
				return s.gateway.Admin().ListAnnouncements
			case a.is(models.RoleTeam):
				return s.gateway.Team().MyAnnouncements
			}
			return nil
		},
		func(c *Cache, _ access, list []models.Announcement) { c.Announcements = list },
	)
}

func (s *Store) CreateAnnouncement(ctx context.Context, input models.AnnouncementInput) (*models.Announcement, error) {
	return mutate(ctx, s, "CreateAnnouncement", "announcements", adminOnly,
		func(ctx context.Context, _ access) (*models.Announcement, error) {
			return s.gateway.Admin().CreateAnnouncement(ctx, input)
		},
		func(c *Cache, a models.Announcement) { c.Announcements = prepend(c.Announcements, a) },
	)
}

func (s *Store) UpdateAnnouncement(ctx context.Context, id string, input models.AnnouncementInput) (*models.Announcement, error) {
	return mutate(ctx, s, "UpdateAnnouncement", "announcements", adminOnly,
		func(ctx context.Context, _ access) (*models.Announcement, error) {
			return s.gateway.Admin().UpdateAnnouncement(ctx, id, input)
		},
		func(c *Cache, a models.Announcement) { c.Announcements = upsert(c.Announcements, a, announcementKey) },
	)
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	return exec(ctx, s, "DeleteAnnouncement", "announcements", adminOnly,
		func(ctx context.Context, _ access) error {
			return s.gateway.Admin().DeleteAnnouncement(ctx, id)
		},
		func(c *Cache) { c.Announcements = remove(c.Announcements, id, announcementKey) },
	)
}

// FetchProblemStatements loads the admin list, or the public list for anyone else.
func (s *Store) FetchProblemStatements(ctx context.Context) {
	fetch(ctx, s, "FetchProblemStatements", "problemStatements",
		func(a access) func(context.Context) ([]models.ProblemStatement, error) {
			if a.is(models.RoleAdmin) {
				return s.gateway.Admin().ListProblemStatements
			}
			return s.gateway.Public().ProblemStatements
		},
		func(c *Cache, _ access, list []models.ProblemStatement) { c.ProblemStatements = list },
	)
}

func (s *Store) CreateProblemStatement(ctx context.Context, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	return mutate(ctx, s, "CreateProblemStatement", "problemStatements", adminOnly,
		func(ctx context.Context, _ access) (*models.ProblemStatement, error) {
			return s.gateway.Admin().CreateProblemStatement(ctx, input)
		},
		func(c *Cache, ps models.ProblemStatement) { c.ProblemStatements = appendAll(c.ProblemStatements, ps) },
	)
}

func (s *Store) UpdateProblemStatement(ctx context.Context, id string, input models.ProblemStatementInput) (*models.ProblemStatement, error) {
	return mutate(ctx, s, "UpdateProblemStatement", "problemStatements", adminOnly,
		func(ctx context.Context, _ access) (*models.ProblemStatement, error) {
			return s.gateway.Admin().UpdateProblemStatement(ctx, id, input)
		},
		func(c *Cache, ps models.ProblemStatement) {
			c.ProblemStatements = upsert(c.ProblemStatements, ps, problemStatementKey)
		},
	)
}

func (s *Store) DeleteProblemStatement(ctx context.Context, id string) error {
	return exec(ctx, s, "DeleteProblemStatement", "problemStatements", adminOnly,
		func(ctx context.Context, _ access) error {
			return s.gateway.Admin().DeleteProblemStatement(ctx, id)
		},
		func(c *Cache) { c.ProblemStatements = remove(c.ProblemStatements, id, problemStatementKey) },
	)
}

// BulkUploadProblemStatements reads a .csv or .xlsx file, re-encodes it as CSV
// and uploads it in one request. Unreadable files never reach the server.
func (s *Store) BulkUploadProblemStatements(ctx context.Context, filename string, data []byte) ([]models.ProblemStatement, error) {
	var created []models.ProblemStatement
	err := s.run(ctx, "BulkUploadProblemStatements", func(ctx context.Context) error {
		a, err := s.require(ctx, "BulkUploadProblemStatements", adminOnly...)
		if err != nil {
			return err
		}
		rows, csv, err := parsers.Normalize(s.parsers, filename, data)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		s.logger.InfoContext(ctx, "Uploading problem statements",
			attr.String("file", filename),
			attr.Int("rows", len(rows)),
		)

		out, err := s.gateway.Admin().BulkUploadProblemStatements(ctx, csv)
		if err != nil {
			return err
		}
		s.commit(ctx, a, "problemStatements", func(c *Cache) {
			c.ProblemStatements = appendAll(c.ProblemStatements, out...)
		})
		created = out
		return nil
	})
	return created, err
}

// FetchGallery loads a team's images: any team's for an admin, the own team's
// for a team (teamID is ignored).
func (s *Store) FetchGallery(ctx context.Context, teamID string) {
	fetch(ctx, s, "FetchGallery", "gallery",
		func(a access) func(context.Context) ([]models.GalleryImage, error) {
			switch {
			case a.is(models.RoleAdmin) && teamID != "":
				return func(ctx context.Context) ([]models.GalleryImage, error) {
					return s.gateway.Admin().ListGallery(ctx, teamID)
				}
			case a.is(models.RoleTeam):
				return s.gateway.Team().MyGallery
			}
			return nil
		},
		func(c *Cache, a access, images []models.GalleryImage) {
			key := teamID
			if a.role == models.RoleTeam {
				key = a.userID
			}
			c.Gallery = withGallery(c.Gallery, key, images)
		},
	)
}

func (s *Store) UploadGalleryImage(ctx context.Context, teamID string, upload models.ImageUpload) (*models.GalleryImage, error) {
	return mutate(ctx, s, "UploadGalleryImage", "gallery", adminOnly,
		func(ctx context.Context, _ access) (*models.GalleryImage, error) {
			if len(upload.Data) == 0 {
				return nil, &gateway.Error{Op: "admin.UploadImage", Kind: gateway.KindValidation, Message: "Image file is empty"}
			}
			return s.gateway.Admin().UploadImage(ctx, teamID, upload)
		},
		func(c *Cache, img models.GalleryImage) {
			c.Gallery = withGallery(c.Gallery, teamID, appendAll(c.Gallery[teamID], img))
		},
	)
}

func (s *Store) DeleteGalleryImage(ctx context.Context, teamID, imageID string) error {
	return exec(ctx, s, "DeleteGalleryImage", "gallery", adminOnly,
		func(ctx context.Context, _ access) error {
			return s.gateway.Admin().DeleteImage(ctx, teamID, imageID)
		},
		func(c *Cache) {
			c.Gallery = withGallery(c.Gallery, teamID, remove(c.Gallery[teamID], imageID, imageKey))
		},
	)
}
