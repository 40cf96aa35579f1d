package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"lexparse/internal/model"
	"lexparse/internal/repository"
	repoMocks "lexparse/internal/repository/mocks"
	"lexparse/internal/storage"
	storeMocks "lexparse/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockParser struct {
	mock.Mock
}

func (m *mockParser) Validate(data []byte) (int, error) {
	args := m.Called(data)
	return args.Int(0), args.Error(1)
}

func (m *mockParser) Parse(data []byte) (*model.ParsedDocument, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParsedDocument), args.Error(1)
}

type mockMetadataExtractor struct {
	mock.Mock
}

func (m *mockMetadataExtractor) Extract(parsed *model.ParsedDocument, documentName string) model.LegalMetadata {
	args := m.Called(parsed, documentName)
	return args.Get(0).(model.LegalMetadata)
}

func parsedFixture() *model.ParsedDocument {
	return &model.ParsedDocument{Content: []model.Element{
		{Type: model.ElementParagraph, Text: "hello", PageNumber: 1},
	}}
}

func TestDocumentService_Process(t *testing.T) {
	ctx := context.Background()
	pdfBody := "%PDF-1.4 fake body"

	setupExtraction := func(mParser *mockParser, mMeta *mockMetadataExtractor) {
		mParser.On("Validate", []byte(pdfBody)).Return(3, nil)
		mParser.On("Parse", []byte(pdfBody)).Return(parsedFixture(), nil)
		mMeta.On("Extract", mock.Anything, "contract.pdf").
			Return(model.NewLegalMetadata("contract.pdf"))
	}

	tests := []struct {
		name       string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				setupExtraction(mParser, mMeta)

				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "application/pdf" &&
						opt.Metadata["original-filename"] == "contract.pdf"
				})).Return(storage.ObjectInfo{
					Key:         "documents/uuid.pdf",
					Size:        int64(len(pdfBody)),
					ContentType: "application/pdf",
				}, nil)

				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "generated/") && strings.HasSuffix(key, "_parsed.json")
				}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)

				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "generated/") && strings.HasSuffix(key, "_metadata.json")
				}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Filename == "contract.pdf" &&
						doc.StoragePath == "documents/uuid.pdf" &&
						doc.PageCount == 3 &&
						strings.HasSuffix(doc.ParsedPath, "_parsed.json") &&
						strings.HasSuffix(doc.MetadataPath, "_metadata.json")
				})).Return(&model.Document{ID: "gen-id"}, nil)

				return strings.NewReader(pdfBody)
			},
		},
		{
			name: "validation error - nil reader",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name: "validator rejects the file before any storage write",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				mParser.On("Validate", []byte(pdfBody)).Return(0, errors.New("not a pdf"))
				return strings.NewReader(pdfBody)
			},
			wantErrMsg: "not a pdf",
		},
		{
			name: "parse error before any storage write",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				mParser.On("Validate", []byte(pdfBody)).Return(3, nil)
				mParser.On("Parse", []byte(pdfBody)).Return(nil, errors.New("broken stream"))
				return strings.NewReader(pdfBody)
			},
			wantErrMsg: "parse document: broken stream",
		},
		{
			name: "storage error on the original upload",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				setupExtraction(mParser, mMeta)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return strings.NewReader(pdfBody)
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "artifact write error rolls back the original",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				setupExtraction(mParser, mMeta)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/")
				}), mock.Anything, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasSuffix(key, "_parsed.json")
				}), mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("artifact fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/")
				})).Return(nil)
				return strings.NewReader(pdfBody)
			},
			wantErrMsg: "store parsed artifact: artifact fail",
		},
		{
			name: "repository error rolls back all written objects",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mParser *mockParser, mMeta *mockMetadataExtractor) io.Reader {
				setupExtraction(mParser, mMeta)
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil).Times(3)
				return strings.NewReader(pdfBody)
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			mParser := new(mockParser)
			mMeta := new(mockMetadataExtractor)
			svc := NewDocumentService(mStore, mRepo, mParser, mMeta, 15*time.Minute)

			r := tt.setupMocks(mStore, mRepo, mParser, mMeta)

			doc, err := svc.Process(ctx, r, "contract.pdf", "application/pdf", int64(len(pdfBody)))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mParser.AssertExpectations(t)
			mMeta.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		checkRes   func(t *testing.T, res *DocumentListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{
						Items: []model.Document{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *DocumentListResult) {
				assert.Equal(t, 2, len(res.Items))
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, nil, nil, 0)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, nil, nil, 0)

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	stored := &model.Document{
		ID:           "valid-id",
		StoragePath:  "documents/valid-id.pdf",
		ParsedPath:   "generated/valid-id_parsed.json",
		MetadataPath: "generated/valid-id_metadata.json",
	}

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path deletes all three objects",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
				mStore.On("Delete", ctx, stored.StoragePath).Return(nil)
				mStore.On("Delete", ctx, stored.ParsedPath).Return(nil)
				mStore.On("Delete", ctx, stored.MetadataPath).Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error keeps the record",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
				mStore.On("Delete", ctx, stored.StoragePath).Return(errors.New("storage fail"))
			},
			wantErr: errors.New("delete storage object documents/valid-id.pdf: storage fail"),
		},
		{
			name: "repository delete error",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
				mStore.On("Delete", ctx, mock.Anything).Return(nil).Times(3)
				mRepo.On("Delete", ctx, "valid-id").Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrIDRequired) || errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Artifacts(t *testing.T) {
	ctx := context.Background()

	stored := &model.Document{
		ID:           "valid-id",
		ParsedPath:   "generated/valid-id_parsed.json",
		MetadataPath: "generated/valid-id_metadata.json",
	}

	t.Run("parsed content streams from storage", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

		mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
		mStore.On("Get", ctx, stored.ParsedPath).
			Return(io.NopCloser(strings.NewReader(`{"content":[]}`)), storage.ObjectInfo{}, nil)

		rc, err := svc.ParsedContent(ctx, "valid-id")
		assert.NoError(t, err)
		defer rc.Close()

		body, _ := io.ReadAll(rc)
		assert.JSONEq(t, `{"content":[]}`, string(body))
		mStore.AssertExpectations(t)
	})

	t.Run("metadata streams from storage", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

		mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
		mStore.On("Get", ctx, stored.MetadataPath).
			Return(io.NopCloser(strings.NewReader(`{"metadata":{}}`)), storage.ObjectInfo{}, nil)

		rc, err := svc.Metadata(ctx, "valid-id")
		assert.NoError(t, err)
		defer rc.Close()
		mStore.AssertExpectations(t)
	})

	t.Run("not found propagates", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

		mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)

		_, err := svc.ParsedContent(ctx, "missing-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

		mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
		mStore.On("Get", ctx, stored.ParsedPath).
			Return(nil, storage.ObjectInfo{}, errors.New("object gone"))

		_, err := svc.ParsedContent(ctx, "valid-id")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fetch artifact: object gone")
	})
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	stored := &model.Document{ID: "valid-id", StoragePath: "documents/valid-id.pdf"}

	t.Run("happy path uses configured expiry", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 15*time.Minute)

		mRepo.On("FindByID", ctx, "valid-id").Return(stored, nil)
		mStore.On("PresignGet", ctx, stored.StoragePath, 15*time.Minute).
			Return("https://storage.example/signed", nil)

		url, err := svc.DownloadURL(ctx, "valid-id")
		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example/signed", url)
		mStore.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, nil, nil, 0)

		mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)

		_, err := svc.DownloadURL(ctx, "missing-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
