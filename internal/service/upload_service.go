package service

import (
	"Trellis/internal/api/config"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/identity"
	"Trellis/internal/pkg/minio"
	"Trellis/internal/pkg/mongo"
	"Trellis/internal/pkg/util"
	"bytes"
	"context"
	"mime/multipart"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// 头像统一裁到方图上限
const maxAvatarEdge = 500

type UploadService interface {
	UploadPostImages(ctx context.Context, memberID, postID string, files []*multipart.FileHeader) ([]string, error)
	UploadAvatar(ctx context.Context, memberID string, file *multipart.FileHeader) (string, error)
}

type uploadServiceImpl struct {
	postRepo   mongo.PostRepo
	memberRepo mongo.MemberRepo
	generator  *identity.Generator
}

func NewUploadService(postRepo mongo.PostRepo, memberRepo mongo.MemberRepo, generator *identity.Generator) UploadService {
	return &uploadServiceImpl{
		postRepo:   postRepo,
		memberRepo: memberRepo,
		generator:  generator,
	}
}

// normalizeUpload 打开上传文件，校验类型与大小，转成规格化 JPEG
func (s *uploadServiceImpl) normalizeUpload(file *multipart.FileHeader, maxWidth, maxHeight int) (*normalizedImage, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}
	if maxSize := config.Cfg.Upload.MaxFileSize; maxSize > 0 && file.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, size, err := util.NormalizeImage(src, maxWidth, maxHeight)
	if err != nil {
		return nil, ErrFileNotSupported
	}
	return &normalizedImage{buf: buf, size: size}, nil
}

type normalizedImage struct {
	buf  *bytes.Buffer
	size int64
}

// UploadPostImages 上传帖子配图，仅作者可操作。图片规格化后
// 入对象存储，文件名数组整体覆盖写回帖子文档
func (s *uploadServiceImpl) UploadPostImages(ctx context.Context, memberID, postID string, files []*multipart.FileHeader) ([]string, error) {
	verify := identity.VerifyID(postID)
	if !verify.IsValid || verify.Category != identity.CategoryPost {
		return nil, ErrInvalidID
	}
	postID = verify.ID
	if len(files) == 0 {
		return nil, ErrInvalidRequestInfo
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status < 0 {
		return nil, ErrPostNotFound
	}
	if post.MemberID != memberID {
		return nil, ErrPermissionDenied
	}
	if len(post.ImageFullNames)+len(files) > consts.MaxImageCountPerPost {
		return nil, ErrInvalidRequestInfo
	}

	uploaded := make([]string, 0, len(files))
	for _, file := range files {
		img, err := s.normalizeUpload(file, consts.MaxImageWidth, consts.MaxImageHeight)
		if err != nil {
			return nil, err
		}
		objectName := s.generator.CreateImageName() + ".jpeg"
		if _, err = minio.UploadFile(ctx, minio.ImageBucket, objectName, img.buf, img.size, "image/jpeg"); err != nil {
			return nil, err
		}
		uploaded = append(uploaded, objectName)
	}

	imageFullNames := append(append([]string{}, post.ImageFullNames...), uploaded...)
	if err = s.postRepo.SetImageFullNames(ctx, postID, imageFullNames); err != nil {
		return nil, err
	}
	return imageFullNames, nil
}

// UploadAvatar 上传头像并更新会员文档，返回新头像文件名
func (s *uploadServiceImpl) UploadAvatar(ctx context.Context, memberID string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrInvalidRequestInfo
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrMemberNotFound
	}
	if member.Status < 0 {
		return "", ErrMemberSuspended
	}

	img, err := s.normalizeUpload(file, maxAvatarEdge, maxAvatarEdge)
	if err != nil {
		return "", err
	}
	objectName := s.generator.CreateImageName() + ".jpeg"
	if _, err = minio.UploadFile(ctx, minio.AvatarBucket, objectName, img.buf, img.size, "image/jpeg"); err != nil {
		return "", err
	}

	if err = s.memberRepo.UpdateInfo(ctx, memberID, bson.M{"avatarImageFullName": objectName}); err != nil {
		return "", err
	}
	return objectName, nil
}
