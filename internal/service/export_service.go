package service

import (
	"context"
	"errors"
	"time"

	"examcraft/internal/cache"
	"examcraft/internal/domain"
	"examcraft/internal/logger"
	"examcraft/internal/render"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	exportFormatHTML = "html"
	exportFormatPDF  = "pdf"
)

// ExportService renders printable documents of paper sets.
type ExportService interface {
	HTML(ctx context.Context, principal domain.Principal, paperID, variant string) (string, error)
	PDF(ctx context.Context, principal domain.Principal, paperID, variant string) ([]byte, error)
}

type exportService struct {
	papers        PaperService
	renderer      *render.Renderer
	pdf           domain.PDFRenderer
	cache         domain.Cache
	cacheTTL      time.Duration
	renderTimeout time.Duration
	group         singleflight.Group
}

// NewExportService creates an export service. pdf and cache may be nil; a
// nil pdf renderer disables PDF export. renderTimeout bounds one shared
// render independently of the requests waiting on it.
func NewExportService(papers PaperService, renderer *render.Renderer, pdf domain.PDFRenderer, cache domain.Cache, cacheTTL, renderTimeout time.Duration) ExportService {
	return &exportService{
		papers:        papers,
		renderer:      renderer,
		pdf:           pdf,
		cache:         cache,
		cacheTTL:      cacheTTL,
		renderTimeout: renderTimeout,
	}
}

// HTML resolves the set on every call; only the rendering of that resolved
// view is cached, keyed by its fingerprint.
func (s *exportService) HTML(ctx context.Context, principal domain.Principal, paperID, variant string) (string, error) {
	resolved, err := s.papers.ResolveVariant(ctx, principal, paperID, variant)
	if err != nil {
		return "", err
	}
	return s.html(ctx, resolved)
}

func (s *exportService) PDF(ctx context.Context, principal domain.Principal, paperID, variant string) ([]byte, error) {
	if s.pdf == nil {
		return nil, domain.NewNotFoundError("PDF export is not enabled on this server")
	}
	resolved, err := s.papers.ResolveVariant(ctx, principal, paperID, variant)
	if err != nil {
		return nil, err
	}
	out, err := s.cached(ctx, exportKey(resolved, exportFormatPDF), func(ctx context.Context) (string, error) {
		html, err := s.html(ctx, resolved)
		if err != nil {
			return "", err
		}
		pdf, err := s.pdf.RenderPDF(ctx, html)
		if err != nil {
			return "", domain.NewInternalError("Failed to render PDF", err)
		}
		return string(pdf), nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (s *exportService) html(ctx context.Context, resolved *domain.ResolvedVariant) (string, error) {
	return s.cached(ctx, exportKey(resolved, exportFormatHTML), func(context.Context) (string, error) {
		html, err := s.renderer.HTML(resolved)
		if err != nil {
			return "", domain.NewInternalError("Failed to render paper", err)
		}
		return html, nil
	})
}

func exportKey(resolved *domain.ResolvedVariant, format string) string {
	return cache.PaperExportKey(resolved.PaperID, resolved.Variant, format, resolved.Fingerprint())
}

// cached serves a document from the cache, rendering it once per key on a
// miss. The shared render runs detached from the first caller so waiters are
// not cancelled with it. Cache failures fall back to rendering.
func (s *exportService) cached(ctx context.Context, key string, renderFn func(context.Context) (string, error)) (string, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		if err == nil {
			logger.Get().Debug("Export cache hit", zap.String("key", key))
			return val, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Export cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		renderCtx := context.WithoutCancel(ctx)
		if s.renderTimeout > 0 {
			var cancel context.CancelFunc
			renderCtx, cancel = context.WithTimeout(renderCtx, s.renderTimeout)
			defer cancel()
		}
		out, err := renderFn(renderCtx)
		if err != nil {
			return "", err
		}
		s.store(renderCtx, key, out)
		return out, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			logger.Get().Debug("Export render shared", zap.String("key", key))
		}
		return res.Val.(string), nil
	}
}

// store writes one document with its own TTL; other documents of the paper
// keep their expiry.
func (s *exportService) store(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logger.Get().Warn("Export cache write failed", zap.String("key", key), zap.Error(err))
	}
}
