package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
)

func newRequestPayload(studentID int64, members ...int64) *dto.CreateProjectRequestRequest {
	return &dto.CreateProjectRequestRequest{
		ProjectNameTH: "ระบบจัดการโครงงาน",
		ProjectNameEN: "Project Management System",
		ProjectType:   "Web Application",
		AdvisorID:     1,
		StudentID:     studentID,
		GroupMembers:  members,
	}
}

func TestRequestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("records request with submitter on roster", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		id, err := svc.Create(ctx, newRequestPayload(10, 11, 12))
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		req, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RequestPending, req.Status)

		var members []int64
		for _, row := range store.roster {
			assert.Equal(t, id, row.requestID)
			members = append(members, row.studentID)
		}
		assert.Equal(t, []int64{10, 11, 12}, members)
	})

	t.Run("deduplicates members and adds the submitter once", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		id, err := svc.Create(ctx, newRequestPayload(10, 10, 11, 11))
		require.NoError(t, err)

		var members []int64
		for _, row := range store.roster {
			if row.requestID == id {
				members = append(members, row.studentID)
			}
		}
		assert.Equal(t, []int64{10, 11}, members)
	})

	t.Run("rejects members already on an active request", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		_, err := svc.Create(ctx, newRequestPayload(10, 11))
		require.NoError(t, err)

		_, err = svc.Create(ctx, newRequestPayload(20, 11))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrActiveRequestExists))

		var customErr *apperrors.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, []int64{11}, customErr.Details["student_ids"])
	})

	t.Run("allows reuse of members after rejection", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		id, err := svc.Create(ctx, newRequestPayload(10, 11))
		require.NoError(t, err)
		require.NoError(t, svc.SetStatus(ctx, id, "rejected"))

		_, err = svc.Create(ctx, newRequestPayload(11))
		assert.NoError(t, err)
	})

	t.Run("requires both project names", func(t *testing.T) {
		svc := NewRequestService(newFakeRequestStore(), &fakeStorage{})

		payload := newRequestPayload(10)
		payload.ProjectNameEN = "   "
		_, err := svc.Create(ctx, payload)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("requires a project type", func(t *testing.T) {
		svc := NewRequestService(newFakeRequestStore(), &fakeStorage{})

		payload := newRequestPayload(10)
		payload.ProjectType = ""
		_, err := svc.Create(ctx, payload)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}

func TestRequestServiceSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval releases a project and repoints the roster", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		id, err := svc.Create(ctx, newRequestPayload(10, 11))
		require.NoError(t, err)

		require.NoError(t, svc.SetStatus(ctx, id, "approved"))

		req, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RequestApproved, req.Status)

		require.Len(t, store.releases, 1)
		for _, project := range store.releases {
			assert.Equal(t, models.ProjectOperate, project.Status)
			assert.Equal(t, "Project Management System", project.NameEN)
		}
		for _, row := range store.roster {
			require.NotNil(t, row.projectID)
		}
	})

	t.Run("rejection deletes the release and frees the members", func(t *testing.T) {
		store := newFakeRequestStore()
		svc := NewRequestService(store, &fakeStorage{})

		id, err := svc.Create(ctx, newRequestPayload(10, 11))
		require.NoError(t, err)
		require.NoError(t, svc.SetStatus(ctx, id, "approved"))

		require.NoError(t, svc.SetStatus(ctx, id, "rejected"))
		assert.Empty(t, store.releases)
		assert.Empty(t, store.roster)

		busy, err := store.ActiveStudentIDs(ctx, []int64{10, 11})
		require.NoError(t, err)
		assert.Empty(t, busy)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		svc := NewRequestService(newFakeRequestStore(), &fakeStorage{})
		err := svc.SetStatus(ctx, 1, "archived")
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("unknown request id", func(t *testing.T) {
		svc := NewRequestService(newFakeRequestStore(), &fakeStorage{})
		err := svc.SetStatus(ctx, 99, "approved")
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
	})
}

func TestRequestServiceQueries(t *testing.T) {
	ctx := context.Background()
	store := newFakeRequestStore()
	svc := NewRequestService(store, &fakeStorage{})

	first, err := svc.Create(ctx, newRequestPayload(10))
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(ctx, first, "rejected"))

	second, err := svc.Create(ctx, newRequestPayload(10, 11))
	require.NoError(t, err)

	t.Run("ListForStudent includes non-submitting group members", func(t *testing.T) {
		list, err := svc.ListForStudent(ctx, 11)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second, list[0].ID)
		assert.Equal(t, int64(10), list[0].StudentID)
	})

	t.Run("ListForStudent drops requests whose roster was cleared", func(t *testing.T) {
		list, err := svc.ListForStudent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second, list[0].ID)
	})

	t.Run("ActiveRequestsFor skips rejected requests", func(t *testing.T) {
		active, err := svc.ActiveRequestsFor(ctx, 10)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second, active[0].ID)
	})

	t.Run("Delete removes request and roster", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, second))
		_, err := store.GetByID(ctx, second)
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
		assert.Empty(t, store.roster)
	})
}

func TestRequestServiceDeleteWithDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the request's document artifacts", func(t *testing.T) {
		store := newFakeRequestStore()
		storage := &fakeStorage{}
		svc := NewRequestService(store, storage)

		id, err := svc.Create(ctx, newRequestPayload(10, 11))
		require.NoError(t, err)
		store.docPaths[id] = []string{
			"http://files.local/project-documents/1_proposal.pdf",
			"http://files.local/project-documents/2_progress.pdf",
		}

		require.NoError(t, svc.Delete(ctx, id))
		_, err = store.GetByID(ctx, id)
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
		assert.Equal(t, []string{
			"http://files.local/project-documents/1_proposal.pdf",
			"http://files.local/project-documents/2_progress.pdf",
		}, storage.deleted)
	})

	t.Run("artifact removal failure is tolerated", func(t *testing.T) {
		store := newFakeRequestStore()
		storage := &fakeStorage{failDelete: true}
		svc := NewRequestService(store, storage)

		id, err := svc.Create(ctx, newRequestPayload(10))
		require.NoError(t, err)
		store.docPaths[id] = []string{"http://files.local/project-documents/1_proposal.pdf"}

		assert.NoError(t, svc.Delete(ctx, id))
		_, err = store.GetByID(ctx, id)
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
	})
}
