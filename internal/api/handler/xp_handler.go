package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/xplog/xp-tracker/internal/api/metrics"
	"github.com/xplog/xp-tracker/internal/core/domain"
	"github.com/xplog/xp-tracker/internal/core/ports"
)

const dayLayout = "2006-01-02"

// XPHandler handles HTTP requests for XP entries.
type XPHandler struct {
	service ports.XPService
}

func NewXPHandler(service ports.XPService) *XPHandler {
	return &XPHandler{service: service}
}

// List handles GET /xp.
//
// With ?id= it returns that entry or null. Otherwise it lists the caller's
// entries, most recent first.
//
// @Summary      List XP entries or get one by id
// @Tags         xp
// @Produce      json
// @Param        owner-id        header    string  false  "Owner id when no bearer token is sent"
// @Param        id              query     string  false  "Entry id"
// @Param        startDate       query     string  false  "Inclusive lower bound, RFC 3339"
// @Param        endDate         query     string  false  "Inclusive upper bound, RFC 3339"
// @Param        date            query     string  false  "Single day, YYYY-MM-DD"
// @Param        tz              query     string  false  "IANA zone for date, default UTC"
// @Param        categoryTitles  query     string  false  "Comma separated tag titles"
// @Param        title           query     string  false  "Case-insensitive title substring"
// @Success      200             {array}   xpResponse
// @Failure      400             {object}  errorResponse
// @Failure      401             {object}  errorResponse
// @Router       /xp [get]
func (h *XPHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if id := c.QueryParam("id"); id != "" {
		x := h.service.GetXPByID(ctx, id)
		if x == nil {
			return c.JSON(http.StatusOK, nil)
		}
		return c.JSON(http.StatusOK, toXPResponse(*x))
	}

	owner, err := ctxOwner(c)
	if err != nil {
		return err
	}
	filter, err := parseXPFilter(c)
	if err != nil {
		return err
	}

	items := h.service.GetXPByOwnerIDWithFilters(ctx, owner, filter)
	items = domain.FilterByTitle(items, c.QueryParam("title"))
	metrics.XPListResultSize.Observe(float64(len(items)))

	return c.JSON(http.StatusOK, toXPResponses(items))
}

// Create handles POST /xp.
//
// @Summary      Log an XP entry
// @Tags         xp
// @Accept       json
// @Produce      json
// @Param        owner-id  header    string           false  "Owner id when no bearer token is sent"
// @Param        body      body      createXPRequest  true   "Entry"
// @Success      201       {object}  xpResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      503       {object}  errorResponse
// @Router       /xp [post]
func (h *XPHandler) Create(c echo.Context) error {
	owner, err := ctxOwner(c)
	if err != nil {
		return err
	}

	var req createXPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.AddXP(c.Request().Context(), ports.AddXPInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Duration:    req.Duration,
		OwnerID:     owner,
	})
	if err != nil {
		return err
	}
	metrics.XPCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toXPResponse(created))
}

// Update handles PUT /xp?id=.
//
// @Summary      Edit an XP entry
// @Tags         xp
// @Accept       json
// @Produce      json
// @Param        id    query     string         true  "Entry id"
// @Param        body  body      editXPRequest  true  "Fields to change"
// @Success      200   {object}  xpResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /xp [put]
func (h *XPHandler) Update(c echo.Context) error {
	id, err := requiredQuery(c, "id")
	if err != nil {
		return err
	}

	var req editXPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.EditXP(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toXPResponse(updated))
}

// Delete handles DELETE /xp?id=.
//
// @Summary      Delete an XP entry
// @Tags         xp
// @Produce      json
// @Param        id   query     string  true  "Entry id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  errorResponse
// @Router       /xp [delete]
func (h *XPHandler) Delete(c echo.Context) error {
	id, err := requiredQuery(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.RemoveXP(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// parseXPFilter reads the listing filter from the query string. date selects a
// whole calendar day in tz and cannot be combined with startDate/endDate.
func parseXPFilter(c echo.Context) (ports.XPFilter, error) {
	var f ports.XPFilter

	f.CategoryTitles = append(splitList(c.QueryParam("categoryTitles")), splitList(c.QueryParam("categoryIds"))...)

	start, err := parseBound(c, "startDate")
	if err != nil {
		return f, err
	}
	end, err := parseBound(c, "endDate")
	if err != nil {
		return f, err
	}

	if day := c.QueryParam("date"); day != "" {
		if start != nil || end != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "date cannot be combined with startDate or endDate")
		}
		loc := time.UTC
		if tz := c.QueryParam("tz"); tz != "" {
			if loc, err = time.LoadLocation(tz); err != nil {
				return f, echo.NewHTTPError(http.StatusBadRequest, "tz must be an IANA time zone")
			}
		}
		d, err := time.ParseInLocation(dayLayout, day, loc)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		s, e := domain.DayRange(d, loc)
		start, end = &s, &e
	}

	f.StartDate, f.EndDate = start, end
	return f, nil
}

func parseBound(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := domain.ParseTimestamp(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC 3339 timestamp")
	}
	return &t, nil
}
