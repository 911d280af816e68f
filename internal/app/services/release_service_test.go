package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
)

type releaseFixture struct {
	releases  *fakeReleaseStore
	types     *fakeTypeStore
	documents *fakeDocumentStore
	svc       ReleaseService
	projectID int64
	requestID int64
}

func newReleaseFixture(t *testing.T) *releaseFixture {
	t.Helper()
	types := newFakeTypeStore("Project proposal (IT01)", "Complete report (PDF)")
	documents := newFakeDocumentStore(types)
	releases := newFakeReleaseStore()

	releases.projects[1] = &models.ReleasedProject{
		ID:     1,
		NameTH: "ระบบจัดการโครงงาน",
		NameEN: "Project Management System",
		Type:   "Web Application",
		Status: models.ProjectOperate,
	}
	releases.latestRequest[1] = 7

	checklist := NewDocumentService(documents, types, newFakeRequestStore(), &fakeStorage{}, &fakeNotifier{})
	return &releaseFixture{
		releases:  releases,
		types:     types,
		documents: documents,
		svc:       NewReleaseService(releases, documents, checklist),
		projectID: 1,
		requestID: 7,
	}
}

func (fx *releaseFixture) approveDocument(t *testing.T, typeID int64) *models.ProjectDocument {
	t.Helper()
	ctx := context.Background()
	id, err := fx.documents.Insert(ctx, &models.ProjectDocument{
		RequestID: fx.requestID,
		TypeID:    typeID,
		FilePath:  "http://files.local/project-documents/doc.pdf",
	})
	require.NoError(t, err)
	require.NoError(t, fx.documents.SetStatus(ctx, id, models.DocumentApproved, nil))
	doc, err := fx.documents.GetByID(ctx, id)
	require.NoError(t, err)
	return doc
}

func TestReleaseServiceMarkComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("completes once every type is approved", func(t *testing.T) {
		fx := newReleaseFixture(t)
		fx.approveDocument(t, 1)
		fx.approveDocument(t, 2)

		require.NoError(t, fx.svc.MarkComplete(ctx, fx.projectID))

		project, err := fx.releases.GetByID(ctx, fx.projectID)
		require.NoError(t, err)
		assert.Equal(t, models.ProjectComplete, project.Status)
	})

	t.Run("refuses while documents are outstanding", func(t *testing.T) {
		fx := newReleaseFixture(t)
		fx.approveDocument(t, 1)

		err := fx.svc.MarkComplete(ctx, fx.projectID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrDocumentsMissing))

		project, err := fx.releases.GetByID(ctx, fx.projectID)
		require.NoError(t, err)
		assert.Equal(t, models.ProjectOperate, project.Status)
	})

	t.Run("approving the last missing type flips the gate", func(t *testing.T) {
		fx := newReleaseFixture(t)
		fx.approveDocument(t, 1)
		require.True(t, errors.Is(fx.svc.MarkComplete(ctx, fx.projectID), apperrors.ErrDocumentsMissing))

		fx.approveDocument(t, 2)
		assert.NoError(t, fx.svc.MarkComplete(ctx, fx.projectID))
	})

	t.Run("refuses twice", func(t *testing.T) {
		fx := newReleaseFixture(t)
		fx.approveDocument(t, 1)
		fx.approveDocument(t, 2)
		require.NoError(t, fx.svc.MarkComplete(ctx, fx.projectID))

		err := fx.svc.MarkComplete(ctx, fx.projectID)
		assert.True(t, errors.Is(err, apperrors.ErrProjectAlreadyComplete))
	})

	t.Run("project without a roster request", func(t *testing.T) {
		fx := newReleaseFixture(t)
		delete(fx.releases.latestRequest, fx.projectID)

		err := fx.svc.MarkComplete(ctx, fx.projectID)
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
	})

	t.Run("unknown project", func(t *testing.T) {
		fx := newReleaseFixture(t)
		err := fx.svc.MarkComplete(ctx, 99)
		assert.True(t, errors.Is(err, apperrors.ErrProjectNotFound))
	})
}

func TestReleaseServiceCompleteReportURL(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the newest approved complete report", func(t *testing.T) {
		fx := newReleaseFixture(t)
		fx.types.types[1].ID = models.CompleteReportTypeID
		fx.approveDocument(t, 1)
		fx.approveDocument(t, models.CompleteReportTypeID)
		latest := fx.approveDocument(t, models.CompleteReportTypeID)
		require.NoError(t, fx.svc.MarkComplete(ctx, fx.projectID))

		url, err := fx.svc.CompleteReportURL(ctx, fx.projectID)
		require.NoError(t, err)
		assert.Equal(t, latest.FilePath, url)
	})

	t.Run("project not yet completed", func(t *testing.T) {
		fx := newReleaseFixture(t)
		_, err := fx.svc.CompleteReportURL(ctx, fx.projectID)
		assert.True(t, errors.Is(err, apperrors.ErrCompleteReportNotFound))
	})

	t.Run("completed project without an approved report", func(t *testing.T) {
		fx := newReleaseFixture(t)
		require.NoError(t, fx.releases.SetStatus(ctx, fx.projectID, models.ProjectComplete))

		_, err := fx.svc.CompleteReportURL(ctx, fx.projectID)
		assert.True(t, errors.Is(err, apperrors.ErrCompleteReportNotFound))
	})
}

func TestReleaseServiceUnapprovedDocuments(t *testing.T) {
	ctx := context.Background()
	fx := newReleaseFixture(t)
	fx.approveDocument(t, 1)

	rows, err := fx.svc.UnapprovedDocuments(ctx, fx.projectID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].TypeID)
	assert.Equal(t, models.DocumentStatusMissing, rows[0].Status)
}

func TestReleaseServiceListPendingReview(t *testing.T) {
	ctx := context.Background()
	fx := newReleaseFixture(t)
	fx.releases.projects[2] = &models.ReleasedProject{ID: 2, Status: models.ProjectComplete}

	pending, err := fx.svc.ListPendingReview(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fx.projectID, pending[0].ID)
}
