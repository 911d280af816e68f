package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/ItsRyS/pms-server/internal/app/models"
	"github.com/ItsRyS/pms-server/internal/app/repositories"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
	"github.com/ItsRyS/pms-server/internal/pkg/filestorage"
)

// In-memory fakes mirroring the repository behavior the services rely
// on. They keep the workflow rules (roster mechanics, checklist joins)
// so service tests exercise real transitions without a database.

type rosterRow struct {
	requestID int64
	studentID int64
	projectID *int64
}

type fakeRequestStore struct {
	nextRequestID int64
	nextProjectID int64
	requests      map[int64]*models.ProjectRequest
	roster        []rosterRow
	releases      map[int64]*models.ReleasedProject
	docPaths      map[int64][]string
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{
		requests: make(map[int64]*models.ProjectRequest),
		releases: make(map[int64]*models.ReleasedProject),
		docPaths: make(map[int64][]string),
	}
}

func (f *fakeRequestStore) ActiveStudentIDs(_ context.Context, studentIDs []int64) ([]int64, error) {
	wanted := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	seen := make(map[int64]bool)
	busy := make([]int64, 0)
	for _, row := range f.roster {
		req, ok := f.requests[row.requestID]
		if !ok || (req.Status != models.RequestPending && req.Status != models.RequestApproved) {
			continue
		}
		if wanted[row.studentID] && !seen[row.studentID] {
			seen[row.studentID] = true
			busy = append(busy, row.studentID)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i] < busy[j] })
	return busy, nil
}

func (f *fakeRequestStore) Create(_ context.Context, req *models.ProjectRequest, members []int64) (int64, error) {
	f.nextRequestID++
	stored := *req
	stored.ID = f.nextRequestID
	stored.Status = models.RequestPending
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.requests[stored.ID] = &stored
	for _, studentID := range members {
		f.roster = append(f.roster, rosterRow{requestID: stored.ID, studentID: studentID})
	}
	return stored.ID, nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id int64) (*models.ProjectRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeRequestStore) ListByStudent(_ context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	result := make([]*models.ProjectRequest, 0)
	for _, row := range f.roster {
		if row.studentID != studentID {
			continue
		}
		if req, ok := f.requests[row.requestID]; ok {
			copied := *req
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeRequestStore) ActiveByStudent(_ context.Context, studentID int64) ([]*models.ProjectRequest, error) {
	result := make([]*models.ProjectRequest, 0)
	for _, row := range f.roster {
		if row.studentID != studentID {
			continue
		}
		req := f.requests[row.requestID]
		if req != nil && (req.Status == models.RequestPending || req.Status == models.RequestApproved) {
			copied := *req
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeRequestStore) ListAll(_ context.Context) ([]*repositories.RequestDetails, error) {
	result := make([]*repositories.RequestDetails, 0)
	for _, req := range f.requests {
		result = append(result, &repositories.RequestDetails{ProjectRequest: *req})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeRequestStore) Approve(_ context.Context, requestID int64) (int64, error) {
	req, ok := f.requests[requestID]
	if !ok {
		return 0, apperrors.ErrRequestNotFound
	}
	req.Status = models.RequestApproved
	f.nextProjectID++
	projectID := f.nextProjectID
	f.releases[projectID] = &models.ReleasedProject{
		ID:         projectID,
		NameTH:     req.NameTH,
		NameEN:     req.NameEN,
		Type:       req.ProjectType,
		Status:     models.ProjectOperate,
		CreateTime: time.Now(),
		AdvisorID:  req.AdvisorID,
	}
	for i := range f.roster {
		if f.roster[i].requestID == requestID {
			id := projectID
			f.roster[i].projectID = &id
		}
	}
	return projectID, nil
}

func (f *fakeRequestStore) Reject(_ context.Context, requestID int64) error {
	req, ok := f.requests[requestID]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	req.Status = models.RequestRejected
	kept := f.roster[:0]
	for _, row := range f.roster {
		if row.requestID == requestID {
			if row.projectID != nil {
				delete(f.releases, *row.projectID)
			}
			continue
		}
		kept = append(kept, row)
	}
	f.roster = kept
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, requestID int64) ([]string, error) {
	if _, ok := f.requests[requestID]; !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	delete(f.requests, requestID)
	kept := f.roster[:0]
	for _, row := range f.roster {
		if row.requestID != requestID {
			kept = append(kept, row)
		}
	}
	f.roster = kept
	paths := f.docPaths[requestID]
	delete(f.docPaths, requestID)
	return paths, nil
}

type fakeTypeStore struct {
	types []*models.DocumentType
}

func newFakeTypeStore(names ...string) *fakeTypeStore {
	store := &fakeTypeStore{}
	for i, name := range names {
		store.types = append(store.types, &models.DocumentType{ID: int64(i + 1), Name: name})
	}
	return store
}

func (f *fakeTypeStore) List(_ context.Context) ([]*models.DocumentType, error) {
	return f.types, nil
}

func (f *fakeTypeStore) GetByID(_ context.Context, id int64) (*models.DocumentType, error) {
	for _, t := range f.types {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperrors.ErrDocumentTypeNotFound
}

func (f *fakeTypeStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.types)), nil
}

type fakeDocumentStore struct {
	nextID  int64
	docs    map[int64]*models.ProjectDocument
	types   *fakeTypeStore
	contact repositories.SubmitterContact
}

func newFakeDocumentStore(types *fakeTypeStore) *fakeDocumentStore {
	return &fakeDocumentStore{
		docs:  make(map[int64]*models.ProjectDocument),
		types: types,
		contact: repositories.SubmitterContact{
			Email:    "student@itpms.local",
			Username: "student",
			TypeName: "Project proposal",
		},
	}
}

func (f *fakeDocumentStore) Insert(_ context.Context, doc *models.ProjectDocument) (int64, error) {
	f.nextID++
	stored := *doc
	stored.ID = f.nextID
	stored.Status = models.DocumentPending
	stored.SubmittedAt = time.Now()
	f.docs[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeDocumentStore) GetByID(_ context.Context, id int64) (*models.ProjectDocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentStore) Replace(_ context.Context, old *models.ProjectDocument, newFilePath string) (int64, error) {
	if _, ok := f.docs[old.ID]; !ok {
		return 0, apperrors.ErrDocumentNotFound
	}
	delete(f.docs, old.ID)
	f.nextID++
	f.docs[f.nextID] = &models.ProjectDocument{
		ID:          f.nextID,
		RequestID:   old.RequestID,
		TypeID:      old.TypeID,
		FilePath:    newFilePath,
		SubmittedAt: time.Now(),
		Status:      models.DocumentPending,
	}
	return f.nextID, nil
}

func (f *fakeDocumentStore) SetStatus(_ context.Context, documentID int64, status models.DocumentStatus, reason *string) error {
	doc, ok := f.docs[documentID]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	doc.Status = status
	doc.RejectReason = reason
	return nil
}

func (f *fakeDocumentStore) UpdateFileAndStatus(_ context.Context, documentID int64, filePath string, status models.DocumentStatus) error {
	doc, ok := f.docs[documentID]
	if !ok {
		return apperrors.ErrDocumentNotFound
	}
	doc.FilePath = filePath
	doc.Status = status
	doc.RejectReason = nil
	return nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, documentID int64) error {
	if _, ok := f.docs[documentID]; !ok {
		return apperrors.ErrDocumentNotFound
	}
	delete(f.docs, documentID)
	return nil
}

func (f *fakeDocumentStore) Checklist(_ context.Context, requestID int64) ([]*repositories.ChecklistRow, error) {
	rows := make([]*repositories.ChecklistRow, 0, len(f.types.types))
	for _, t := range f.types.types {
		row := &repositories.ChecklistRow{TypeID: t.ID, TypeName: t.Name, Status: models.DocumentStatusMissing}
		for _, doc := range f.docs {
			if doc.RequestID == requestID && doc.TypeID == t.ID {
				id := doc.ID
				path := doc.FilePath
				at := doc.SubmittedAt
				row.DocumentID = &id
				row.FilePath = &path
				row.SubmittedAt = &at
				row.Status = string(doc.Status)
				row.RejectReason = doc.RejectReason
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (f *fakeDocumentStore) History(_ context.Context, requestID int64) ([]*repositories.DocumentDetails, error) {
	result := make([]*repositories.DocumentDetails, 0)
	for _, doc := range f.docs {
		if doc.RequestID != requestID {
			continue
		}
		detail := &repositories.DocumentDetails{ProjectDocument: *doc}
		if t, err := f.types.GetByID(context.Background(), doc.TypeID); err == nil {
			detail.TypeName = t.Name
		}
		result = append(result, detail)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeDocumentStore) ApprovedTypeCount(_ context.Context, requestID int64) (int64, error) {
	approved := make(map[int64]bool)
	for _, doc := range f.docs {
		if doc.RequestID == requestID && doc.Status == models.DocumentApproved {
			approved[doc.TypeID] = true
		}
	}
	return int64(len(approved)), nil
}

func (f *fakeDocumentStore) LatestApprovedByType(_ context.Context, requestID, typeID int64) (*models.ProjectDocument, error) {
	var latest *models.ProjectDocument
	for _, doc := range f.docs {
		if doc.RequestID == requestID && doc.TypeID == typeID && doc.Status == models.DocumentApproved {
			if latest == nil || doc.ID > latest.ID {
				latest = doc
			}
		}
	}
	if latest == nil {
		return nil, apperrors.ErrDocumentNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeDocumentStore) SubmitterContact(_ context.Context, documentID int64) (*repositories.SubmitterContact, error) {
	if _, ok := f.docs[documentID]; !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	contact := f.contact
	return &contact, nil
}

type fakeReleaseStore struct {
	projects      map[int64]*models.ReleasedProject
	latestRequest map[int64]int64
}

func newFakeReleaseStore() *fakeReleaseStore {
	return &fakeReleaseStore{
		projects:      make(map[int64]*models.ReleasedProject),
		latestRequest: make(map[int64]int64),
	}
}

func (f *fakeReleaseStore) ListActive(_ context.Context) ([]*repositories.ReleaseDetails, error) {
	result := make([]*repositories.ReleaseDetails, 0)
	for _, p := range f.projects {
		result = append(result, &repositories.ReleaseDetails{ReleasedProject: *p})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeReleaseStore) ListPendingReview(_ context.Context) ([]*repositories.ReleaseDetails, error) {
	result := make([]*repositories.ReleaseDetails, 0)
	for _, p := range f.projects {
		if p.Status == models.ProjectOperate {
			result = append(result, &repositories.ReleaseDetails{ReleasedProject: *p})
		}
	}
	return result, nil
}

func (f *fakeReleaseStore) GetByID(_ context.Context, projectID int64) (*models.ReleasedProject, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, apperrors.ErrProjectNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeReleaseStore) SetStatus(_ context.Context, projectID int64, status models.ProjectStatus) error {
	p, ok := f.projects[projectID]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeReleaseStore) LatestRequestID(_ context.Context, projectID int64) (int64, error) {
	id, ok := f.latestRequest[projectID]
	if !ok {
		return 0, apperrors.ErrRequestNotFound
	}
	return id, nil
}

// fakeStorage records saves and deletes without touching disk.
type fakeStorage struct {
	nextID     int
	saved      []string
	deleted    []string
	failSave   bool
	failDelete bool
}

func (f *fakeStorage) Save(fileHeader *multipart.FileHeader, category string) (*filestorage.StoredFile, error) {
	if f.failSave {
		return nil, errors.New("storage unavailable")
	}
	f.nextID++
	key := fmt.Sprintf("%s/%d_%s", category, f.nextID, fileHeader.Filename)
	url := "http://files.local/" + key
	f.saved = append(f.saved, url)
	return &filestorage.StoredFile{Key: key, URL: url}, nil
}

func (f *fakeStorage) Delete(fileURL, _ string) error {
	if f.failDelete {
		return errors.New("storage unavailable")
	}
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

// fakeNotifier records outgoing mail and can be made to fail.
type fakeNotifier struct {
	sent []sentMail
	fail bool
}

func (f *fakeNotifier) Send(toEmail, subject, htmlBody string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{to: toEmail, subject: subject, body: htmlBody})
	return nil
}

func upload(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}
