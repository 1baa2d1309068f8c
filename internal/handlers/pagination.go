package handlers

import (
	"net/url"
	"strconv"

	"foodgram/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

func pageRequest(c *fiber.Ctx, defaultSize int) domain.PageRequest {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultSize)
	if limit < 1 {
		limit = defaultSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return domain.PageRequest{Page: page, Limit: limit}
}

func paginate[T any](c *fiber.Ctx, req domain.PageRequest, count int64, results []T) domain.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := domain.Page[T]{Count: count, Results: results}
	if req.HasNext(count) {
		page.Next = pageLink(c, req.Page+1)
	}
	if req.HasPrevious() {
		page.Previous = pageLink(c, req.Page-1)
	}
	return page
}

func pageLink(c *fiber.Ctx, page int) *string {
	u, err := url.Parse(c.OriginalURL())
	if err != nil {
		return nil
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := c.BaseURL() + u.String()
	return &link
}
