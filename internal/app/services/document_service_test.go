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

type documentFixture struct {
	requests  *fakeRequestStore
	types     *fakeTypeStore
	documents *fakeDocumentStore
	storage   *fakeStorage
	notifier  *fakeNotifier
	svc       DocumentService
	requestID int64
}

func newDocumentFixture(t *testing.T, typeNames ...string) *documentFixture {
	t.Helper()
	if len(typeNames) == 0 {
		typeNames = []string{"Project proposal (IT01)", "Progress report (IT02)"}
	}
	requests := newFakeRequestStore()
	types := newFakeTypeStore(typeNames...)
	documents := newFakeDocumentStore(types)
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}

	requestID, err := requests.Create(context.Background(), &models.ProjectRequest{
		NameTH:      "ระบบจัดการโครงงาน",
		NameEN:      "Project Management System",
		ProjectType: "Web Application",
		AdvisorID:   1,
		StudentID:   10,
	}, []int64{10})
	require.NoError(t, err)

	return &documentFixture{
		requests:  requests,
		types:     types,
		documents: documents,
		storage:   storage,
		notifier:  notifier,
		svc:       NewDocumentService(documents, types, requests, storage, notifier),
		requestID: requestID,
	}
}

func TestDocumentServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the file and records a pending submission", func(t *testing.T) {
		fx := newDocumentFixture(t)

		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)
		assert.Equal(t, models.DocumentPending, doc.Status)
		assert.NotZero(t, doc.ID)
		require.Len(t, fx.storage.saved, 1)
		assert.Equal(t, fx.storage.saved[0], doc.FilePath)
	})

	t.Run("requires a file", func(t *testing.T) {
		fx := newDocumentFixture(t)
		_, err := fx.svc.Submit(ctx, fx.requestID, 1, nil)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("unknown request", func(t *testing.T) {
		fx := newDocumentFixture(t)
		_, err := fx.svc.Submit(ctx, 99, 1, upload("proposal.pdf"))
		assert.True(t, errors.Is(err, apperrors.ErrRequestNotFound))
		assert.Empty(t, fx.storage.saved)
	})

	t.Run("unknown document type", func(t *testing.T) {
		fx := newDocumentFixture(t)
		_, err := fx.svc.Submit(ctx, fx.requestID, 42, upload("proposal.pdf"))
		assert.True(t, errors.Is(err, apperrors.ErrDocumentTypeNotFound))
		assert.Empty(t, fx.storage.saved)
	})

	t.Run("storage failure surfaces as dependency error", func(t *testing.T) {
		fx := newDocumentFixture(t)
		fx.storage.failSave = true
		_, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		assert.True(t, errors.Is(err, apperrors.ErrDependency))
	})
}

func TestDocumentServiceResubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the row and removes the old artifact", func(t *testing.T) {
		fx := newDocumentFixture(t)
		first, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("v1.pdf"))
		require.NoError(t, err)

		second, err := fx.svc.Resubmit(ctx, first.ID, upload("v2.pdf"))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, models.DocumentPending, second.Status)

		_, err = fx.documents.GetByID(ctx, first.ID)
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
		assert.Equal(t, []string{first.FilePath}, fx.storage.deleted)
	})

	t.Run("artifact removal failure does not fail the resubmission", func(t *testing.T) {
		fx := newDocumentFixture(t)
		first, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("v1.pdf"))
		require.NoError(t, err)

		fx.storage.failDelete = true
		_, err = fx.svc.Resubmit(ctx, first.ID, upload("v2.pdf"))
		assert.NoError(t, err)
	})

	t.Run("unknown document", func(t *testing.T) {
		fx := newDocumentFixture(t)
		_, err := fx.svc.Resubmit(ctx, 99, upload("v2.pdf"))
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
		assert.Empty(t, fx.storage.saved)
	})
}

func TestDocumentServiceReview(t *testing.T) {
	ctx := context.Background()

	t.Run("approve clears the reason and notifies", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionApprove}))

		stored, err := fx.documents.GetByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentApproved, stored.Status)
		assert.Nil(t, stored.RejectReason)
		require.Len(t, fx.notifier.sent, 1)
		assert.Equal(t, "student@itpms.local", fx.notifier.sent[0].to)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		err = fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionReject})
		assert.True(t, errors.Is(err, apperrors.ErrRejectReasonRequired))
		assert.Empty(t, fx.notifier.sent)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionReject, Reason: "missing chapter 3"}))

		stored, err := fx.documents.GetByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentRejected, stored.Status)
		require.NotNil(t, stored.RejectReason)
		assert.Equal(t, "missing chapter 3", *stored.RejectReason)
		require.Len(t, fx.notifier.sent, 1)
		assert.Contains(t, fx.notifier.sent[0].body, "missing chapter 3")
	})

	t.Run("return requires a corrected file", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		err = fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionReturn})
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("return swaps the artifact in place", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)
		originalPath := doc.FilePath

		require.NoError(t, fx.svc.Review(ctx, doc.ID, ReviewInput{
			Decision:    DecisionReturn,
			Replacement: upload("corrected.pdf"),
		}))

		stored, err := fx.documents.GetByID(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DocumentReturned, stored.Status)
		assert.NotEqual(t, originalPath, stored.FilePath)
		assert.Equal(t, []string{originalPath}, fx.storage.deleted)
		require.Len(t, fx.notifier.sent, 1)
		assert.Contains(t, fx.notifier.sent[0].body, stored.FilePath)
	})

	t.Run("notifier failure never fails the review", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		fx.notifier.fail = true
		assert.NoError(t, fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionApprove}))
	})

	t.Run("unknown decision", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		err = fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: "archive"})
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}

func TestDocumentServiceChecklist(t *testing.T) {
	ctx := context.Background()
	fx := newDocumentFixture(t)

	doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
	require.NoError(t, err)

	rows, err := fx.svc.Checklist(ctx, fx.requestID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, string(models.DocumentPending), rows[0].Status)
	require.NotNil(t, rows[0].DocumentID)
	assert.Equal(t, doc.ID, *rows[0].DocumentID)

	assert.Equal(t, models.DocumentStatusMissing, rows[1].Status)
	assert.Nil(t, rows[1].DocumentID)
}

func TestDocumentServiceIsComplete(t *testing.T) {
	ctx := context.Background()
	fx := newDocumentFixture(t)

	done, err := fx.svc.IsComplete(ctx, fx.requestID)
	require.NoError(t, err)
	assert.False(t, done)

	for typeID := int64(1); typeID <= 2; typeID++ {
		doc, err := fx.svc.Submit(ctx, fx.requestID, typeID, upload("doc.pdf"))
		require.NoError(t, err)
		require.NoError(t, fx.svc.Review(ctx, doc.ID, ReviewInput{Decision: DecisionApprove}))
	}

	done, err = fx.svc.IsComplete(ctx, fx.requestID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDocumentServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the row and the artifact", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.Delete(ctx, doc.ID))
		_, err = fx.documents.GetByID(ctx, doc.ID)
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
		assert.Equal(t, []string{doc.FilePath}, fx.storage.deleted)
	})

	t.Run("artifact removal failure is tolerated", func(t *testing.T) {
		fx := newDocumentFixture(t)
		doc, err := fx.svc.Submit(ctx, fx.requestID, 1, upload("proposal.pdf"))
		require.NoError(t, err)

		fx.storage.failDelete = true
		assert.NoError(t, fx.svc.Delete(ctx, doc.ID))
	})
}
