// Package photo 处理评估附带的照片：解码 data URL，按宽度缩放，
// 重新编码为 JPEG 后交给 Store 落地。
package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	pkgerrors "digital-supervision/backend/pkg/errors"
)

// Processor 照片处理器
type Processor struct {
	maxWidth  int
	quality   int
	maxPhotos int
	store     Store
}

// NewProcessor 创建照片处理器；maxPhotos <= 0 表示不限制
func NewProcessor(store Store, maxWidth, quality, maxPhotos int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{
		maxWidth:  maxWidth,
		quality:   quality,
		maxPhotos: maxPhotos,
		store:     store,
	}
}

// Process 依次处理照片；http(s) 链接原样保留
func (p *Processor) Process(ctx context.Context, photos []string) ([]string, error) {
	if p.maxPhotos > 0 && len(photos) > p.maxPhotos {
		return nil, pkgerrors.NewValidation(fmt.Sprintf("แนบรูปภาพได้ไม่เกิน %d รูป", p.maxPhotos))
	}

	out := make([]string, 0, len(photos))
	for i, raw := range photos {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			out = append(out, raw)
			continue
		}

		data, err := decodeDataURL(raw)
		if err != nil {
			return nil, pkgerrors.NewValidation(fmt.Sprintf("รูปภาพที่ %d ไม่ถูกต้อง", i+1))
		}

		jpeg, err := p.normalize(data)
		if err != nil {
			return nil, pkgerrors.NewValidation(fmt.Sprintf("รูปภาพที่ %d ไม่ถูกต้อง", i+1))
		}

		ref, err := p.store.Put(ctx, uuid.New().String()+".jpg", jpeg, "image/jpeg")
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func (p *Processor) normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	if p.maxWidth > 0 && img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeDataURL 解析 data:<mime>;base64,<payload>
func decodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("not a data url")
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	meta := s[len("data:"):comma]
	if !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data url %q", meta)
	}
	return base64.StdEncoding.DecodeString(s[comma+1:])
}
