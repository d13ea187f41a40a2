package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/archlens/archlens/internal/links"
	"github.com/archlens/archlens/internal/validation"
	"github.com/archlens/archlens/internal/version"
)

// linkJSON is the wire form of a link instance.
type linkJSON struct {
	SourceID    string   `json:"source_id"`
	TargetIDs   []string `json:"target_ids"`
	TypeID      string   `json:"type_id"`
	Predicate   string   `json:"predicate"`
	SourceLayer string   `json:"source_layer"`
	FieldPath   string   `json:"field_path"`
}

func toLinkJSON(in []*links.Instance) []linkJSON {
	out := make([]linkJSON, 0, len(in))
	for _, inst := range in {
		out = append(out, linkJSON{
			SourceID:    inst.SourceID,
			TargetIDs:   inst.TargetIDs,
			TypeID:      inst.Type.ID,
			Predicate:   inst.Type.EffectivePredicate(),
			SourceLayer: inst.SourceLayer,
			FieldPath:   inst.FieldPath,
		})
	}
	return out
}

func (s *Server) healthCheck(c echo.Context) error {
	s.mu.RLock()
	elements := s.analyzer.ElementCount()
	s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  version.Get(),
		"elements": elements,
		"clients":  s.hub.ClientCount(),
	})
}

func (s *Server) getStats(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(http.StatusOK, s.analyzer.Stats())
}

func (s *Server) listLinks(c echo.Context) error {
	typeID := c.QueryParam("type")

	s.mu.RLock()
	defer s.mu.RUnlock()

	instances := s.analyzer.Links()
	if typeID != "" {
		instances = s.analyzer.LinksByType(typeID)
	}
	return c.JSON(http.StatusOK, toLinkJSON(instances))
}

func (s *Server) listBrokenLinks(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	broken := s.analyzer.BrokenLinks()
	out := make([]map[string]interface{}, 0, len(broken))
	for _, b := range broken {
		out = append(out, map[string]interface{}{
			"link":            toLinkJSON([]*links.Instance{b.Link})[0],
			"missing_targets": b.MissingTargets,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listOrphans(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(http.StatusOK, s.analyzer.OrphanedElements())
}

func (s *Server) getElementLinks(c echo.Context) error {
	id := c.Param("id")
	typeID := c.QueryParam("type")

	s.mu.RLock()
	defer s.mu.RUnlock()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"outgoing": toLinkJSON(s.analyzer.LinksFrom(id, typeID)),
		"incoming": toLinkJSON(s.analyzer.LinksTo(id, typeID)),
	})
}

func (s *Server) getConnected(c echo.Context) error {
	id := c.Param("id")
	dir := links.Direction(c.QueryParam("direction"))
	if dir == "" {
		dir = links.Both
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.analyzer.HasElement(id) {
		return NotFoundError("element", id)
	}
	return c.JSON(http.StatusOK, s.analyzer.ConnectedElements(id, dir))
}

func (s *Server) findPath(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" || to == "" {
		return BadRequestError("Missing parameters", "both 'from' and 'to' are required")
	}

	maxHops := s.config.Validation.MaxHops
	if raw := c.QueryParam("max_hops"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return BadRequestError("Invalid max_hops", "max_hops must be a positive integer")
		}
		maxHops = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if c.QueryParam("all") == "true" {
		paths := s.analyzer.FindAllPaths(from, to, maxHops)
		out := make([]map[string]interface{}, 0, len(paths))
		for _, p := range paths {
			out = append(out, pathJSON(p))
		}
		return c.JSON(http.StatusOK, out)
	}

	path := s.analyzer.FindPath(from, to, maxHops)
	if path == nil {
		return NotFoundError("path", from+" -> "+to)
	}
	return c.JSON(http.StatusOK, pathJSON(path))
}

func pathJSON(p *links.Path) map[string]interface{} {
	return map[string]interface{}{
		"source_id":      p.SourceID,
		"target_id":      p.TargetID,
		"total_distance": p.TotalDistance(),
		"hops":           p.Hops,
		"description":    p.Description(),
	}
}

func (s *Server) runValidation(c echo.Context) error {
	strict := s.config.Validation.Strict
	if raw := c.QueryParam("strict"); raw != "" {
		strict = raw == "true"
	}

	s.mu.RLock()
	v := validation.NewLinkValidator(s.catalog, s.analyzer, strict)
	issues := v.ValidateAll()
	summary := v.Summarize()
	s.mu.RUnlock()

	s.hub.Broadcast(NewModelEvent(EventValidationCompleted, summary))

	if issues == nil {
		issues = []validation.Issue{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": summary,
		"issues":  issues,
	})
}

func (s *Server) listLinkTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.catalog.All())
}

func (s *Server) listPredicates(c echo.Context) error {
	out := make([]interface{}, 0, s.predicates.Len())
	for _, p := range s.predicates.All() {
		out = append(out, s.predicates.Get(p))
	}
	return c.JSON(http.StatusOK, out)
}
