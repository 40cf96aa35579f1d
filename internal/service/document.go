package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"lexparse/internal/model"
	"lexparse/internal/repository"
	"lexparse/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// Parser validates PDF bytes and extracts their structural content.
// Satisfied by extract.Engine.
type Parser interface {
	Validate(data []byte) (int, error)
	Parse(data []byte) (*model.ParsedDocument, error)
}

// MetadataExtractor derives the legal metadata record from parsed content.
// Satisfied by legal.Extractor.
type MetadataExtractor interface {
	Extract(parsed *model.ParsedDocument, documentName string) model.LegalMetadata
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling legal PDF documents.
type DocumentService interface {
	// Process stores the uploaded PDF, runs structural and legal metadata
	// extraction, persists both JSON artifacts to object storage, and
	// records the document. Storage writes are rolled back if the DB
	// insert fails.
	Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document and its three stored objects.
	Delete(ctx context.Context, id string) error

	// ParsedContent streams the structural extraction artifact.
	ParsedContent(ctx context.Context, id string) (io.ReadCloser, error)

	// Metadata streams the legal metadata artifact.
	Metadata(ctx context.Context, id string) (io.ReadCloser, error)

	// DownloadURL returns a presigned GET URL for the original PDF.
	DownloadURL(ctx context.Context, id string) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	parser        Parser
	meta          MetadataExtractor
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, parser Parser, meta MetadataExtractor, presignExpiry time.Duration) DocumentService {
	return &documentService{
		store:         store,
		repo:          repo,
		parser:        parser,
		meta:          meta,
		presignExpiry: presignExpiry,
	}
}

func (s *documentService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	pageCount, err := s.parser.Validate(data)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	pdfKey := path.Join("documents", id+".pdf")
	parsedKey := path.Join("generated", id+"_parsed.json")
	metaKey := path.Join("generated", id+"_metadata.json")

	// Extract before any storage write so a broken PDF costs nothing to
	// roll back.
	parsed, err := s.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	metadata := s.meta.Extract(parsed, originalFilename)

	parsedJSON, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode parsed artifact: %w", err)
	}
	metaJSON, err := json.MarshalIndent(model.LegalMetadataArtifact{Metadata: metadata}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata artifact: %w", err)
	}

	written := make([]string, 0, 3)
	rollback := func() {
		for _, key := range written {
			_ = s.store.Delete(ctx, key)
		}
	}

	objInfo, err := s.putBytes(ctx, pdfKey, data, contentType, map[string]string{
		"original-filename": originalFilename,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	written = append(written, pdfKey)

	if _, err := s.putBytes(ctx, parsedKey, parsedJSON, "application/json", nil); err != nil {
		rollback()
		return nil, fmt.Errorf("store parsed artifact: %w", err)
	}
	written = append(written, parsedKey)

	if _, err := s.putBytes(ctx, metaKey, metaJSON, "application/json", nil); err != nil {
		rollback()
		return nil, fmt.Errorf("store metadata artifact: %w", err)
	}
	written = append(written, metaKey)

	doc := &model.Document{
		ID:           id,
		Filename:     originalFilename,
		StoragePath:  objInfo.Key,
		ParsedPath:   parsedKey,
		MetadataPath: metaKey,
		Size:         objInfo.Size,
		ContentType:  objInfo.ContentType,
		PageCount:    pageCount,
		DocumentDate: metadata.DocumentDate,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		rollback()
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) putBytes(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (storage.ObjectInfo, error) {
	return s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata:    metadata,
	})
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes the original and both artifacts from storage, then deletes
// the record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete objects first; if any fails, keep the DB row so the document
	// remains discoverable.
	for _, key := range []string{doc.StoragePath, doc.ParsedPath, doc.MetadataPath} {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete storage object %s: %w", key, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// ParsedContent streams the structural extraction artifact for a document.
func (s *documentService) ParsedContent(ctx context.Context, id string) (io.ReadCloser, error) {
	return s.artifact(ctx, id, func(d *model.Document) string { return d.ParsedPath })
}

// Metadata streams the legal metadata artifact for a document.
func (s *documentService) Metadata(ctx context.Context, id string) (io.ReadCloser, error) {
	return s.artifact(ctx, id, func(d *model.Document) string { return d.MetadataPath })
}

func (s *documentService) artifact(ctx context.Context, id string, key func(*model.Document) string) (io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, _, err := s.store.Get(ctx, key(doc))
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	return rc, nil
}

// DownloadURL returns a presigned URL for the original PDF.
func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
}
