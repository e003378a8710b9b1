package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Lio2412/recipe_go_server/config"
	"github.com/Lio2412/recipe_go_server/internal/model"
	"github.com/Lio2412/recipe_go_server/internal/pkg/oss"
	"github.com/Lio2412/recipe_go_server/internal/repository"
)

var (
	ErrMediaNotFound    = errors.New("媒体文件不存在")
	ErrFileTooLarge     = errors.New("文件超出大小限制")
	ErrFileTypeNotAllow = errors.New("不支持的文件类型")
)

type MediaService struct {
	mediaRepo *repository.MediaRepository
	ossClient *oss.Client
	cfg       *config.UploadConfig
}

func NewMediaService(mediaRepo *repository.MediaRepository, ossClient *oss.Client, cfg *config.UploadConfig) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		ossClient: ossClient,
		cfg:       cfg,
	}
}

// Upload 上传文件到 OSS 并登记媒体库
func (s *MediaService) Upload(uploaderID int64, fileName string, data []byte) (*model.Media, error) {
	if s.cfg.MaxSize > 0 && int64(len(data)) > s.cfg.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(path.Ext(fileName))
	if !s.extAllowed(ext) {
		return nil, ErrFileTypeNotAllow
	}

	objectKey := fmt.Sprintf("media/%d/%d%s", uploaderID, time.Now().UnixNano(), ext)
	url, err := s.ossClient.UploadMedia(objectKey, data, ext)
	if err != nil {
		return nil, err
	}

	media := &model.Media{
		UploaderID: uploaderID,
		FileName:   fileName,
		ObjectKey:  objectKey,
		URL:        url,
		MimeType:   oss.ContentTypeByExt(ext),
		Size:       int64(len(data)),
	}
	if err := s.mediaRepo.Create(media); err != nil {
		return nil, err
	}

	return media, nil
}

// List 分页查询媒体库
func (s *MediaService) List(page, pageSize int) ([]*model.Media, int64, error) {
	return s.mediaRepo.List(page, pageSize)
}

// Delete 删除媒体文件及记录
func (s *MediaService) Delete(id int64) error {
	media, err := s.mediaRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.ossClient.Delete(media.ObjectKey); err != nil {
		return err
	}
	return s.mediaRepo.Delete(id)
}

func (s *MediaService) extAllowed(ext string) bool {
	if len(s.cfg.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
