package service

import (
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"microblog/internal/contract"
	"microblog/internal/domain/entity"
	"microblog/internal/domain/sqlite/repository"
	"microblog/internal/infrastructure/storage"
	"microblog/internal/utils/apierror"
)

type DefaultMediaService struct {
	db      *gorm.DB
	Storage storage.Storage
}

func NewMediaService(db *gorm.DB, store storage.Storage) *DefaultMediaService {
	return &DefaultMediaService{db: db, Storage: store}
}

// Upload stores the raw file under a fresh uuid name and records an unbound
// attachment row pointing at it. The attachment is linked to a tweet later,
// at tweet-creation time.
func (s *DefaultMediaService) Upload(fileHeader *multipart.FileHeader) (*contract.AddMediaResponse, apierror.ErrorResponse) {
	data, apierr := readUpload(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	link, err := s.Storage.Save(data, filename)
	if err != nil {
		log.Errorf("failed to store media file: %v", err)
		return nil, apierror.InternalServerError
	}

	attachment := &entity.Attachment{Link: link}
	if err := repository.NewAttachmentRepository(s.db).Create(attachment); err != nil {
		log.Errorf("failed to save attachment: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.AddMediaResponse{ResultSuccess: contract.OK(), MediaID: attachment.ID}, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open uploaded file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read uploaded file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
