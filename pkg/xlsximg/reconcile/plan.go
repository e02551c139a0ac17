package reconcile

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// Result is the outcome of planning: the images to produce and the mapping
// keys that received none.
type Result struct {
	Assignments []models.AssignedImage
	Orphans     []string
}

type group struct {
	key     string
	vm      int
	members []models.ImageMapping
}

// Plan assigns media files to image mappings.
//
// Mappings are grouped by vm value. Groups are ordered by vm as an integer and
// the i-th group receives the i-th file of files in name order. A group with a
// single mapping keeps the file name; a group with N mappings gets
// base_1.ext ... base_N.ext in row order. Groups beyond the number of files,
// and groups whose vm is not an integer, are orphaned. An output name
// produced twice is logged as a warning; the later copy wins.
func Plan(mappings []models.ImageMapping, files []string, logger *zap.Logger) Result {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result

	if len(files) < len(mappings) {
		logger.Warn("fewer image files than image mappings",
			zap.Int("files", len(files)),
			zap.Int("mappings", len(mappings)))
	}

	groups := make(map[string]*group)
	for _, m := range mappings {
		vm, err := strconv.Atoi(strings.TrimSpace(m.GroupKey))
		if err != nil {
			logger.Warn("image mapping has a non-integer vm value",
				zap.String("mapping", m.Key),
				zap.String("vm", m.GroupKey))
			res.Orphans = append(res.Orphans, m.Key)
			continue
		}
		g, ok := groups[m.GroupKey]
		if !ok {
			g = &group{key: m.GroupKey, vm: vm}
			groups[m.GroupKey] = g
		}
		g.members = append(g.members, m)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.members, func(i, j int) bool {
			a, b := g.members[i], g.members[j]
			if a.Row != b.Row {
				return a.Row < b.Row
			}
			return a.Key < b.Key
		})
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].vm != ordered[j].vm {
			return ordered[i].vm < ordered[j].vm
		}
		return ordered[i].key < ordered[j].key
	})

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	produced := make(map[string]string)

	for i, g := range ordered {
		if i >= len(sorted) {
			for _, m := range g.members {
				logger.Warn("image mapping has no image file", zap.String("mapping", m.Key))
				res.Orphans = append(res.Orphans, m.Key)
			}
			continue
		}

		source := sorted[i]
		for n, m := range g.members {
			name := source
			if len(g.members) > 1 {
				name = numberedName(source, n+1)
			}
			if prev, ok := produced[name]; ok {
				logger.Warn("output image name already used, file will be overwritten",
					zap.String("image", name),
					zap.String("mapping", m.Key),
					zap.String("previous_mapping", prev))
			}
			produced[name] = m.Key
			res.Assignments = append(res.Assignments, models.AssignedImage{
				OutputName: name,
				SourceName: source,
				Mapping:    m,
			})
		}
	}

	return res
}

// numberedName turns "image1.png" into "image1_<n>.png".
func numberedName(name string, n int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(n) + ext
}
