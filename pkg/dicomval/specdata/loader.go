package specdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// rawIODEntry and rawModuleAttr mirror the on-disk JSON shapes exactly, so
// LoadDir can unmarshal straight into them before converting to the typed
// IODSpecs/ModuleSpecs the rest of the module works with.
type rawIODEntry struct {
	Title   string `json:"title"`
	Modules map[string]struct {
		Usage string `json:"usage"`
		Cond  string `json:"cond"`
	} `json:"modules"`
}

type rawModuleAttr struct {
	Type string `json:"type"`
	Cond string `json:"cond"`
}

// LoadDir reads iod_info.json and module_info.json from dir, mirroring the
// cache layout the out-of-scope spec downloader produces.
func LoadDir(dir string) (*IODSpecs, *ModuleSpecs, error) {
	iodBytes, err := os.ReadFile(filepath.Join(dir, "iod_info.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("reading iod_info.json: %w", err)
	}
	moduleBytes, err := os.ReadFile(filepath.Join(dir, "module_info.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("reading module_info.json: %w", err)
	}
	return Parse(iodBytes, moduleBytes)
}

// Parse builds IODSpecs/ModuleSpecs directly from iod_info.json and
// module_info.json bytes, independent of any filesystem layout.
func Parse(iodJSON, moduleJSON []byte) (*IODSpecs, *ModuleSpecs, error) {
	var rawIOD map[string]rawIODEntry
	if err := json.Unmarshal(iodJSON, &rawIOD); err != nil {
		return nil, nil, fmt.Errorf("parsing IOD spec JSON: %w", err)
	}
	iod := &IODSpecs{byUID: make(map[string]IODEntry, len(rawIOD))}
	for uid, entry := range rawIOD {
		modules := make(map[string]ModuleRef, len(entry.Modules))
		for ref, m := range entry.Modules {
			modules[ref] = ModuleRef{Usage: Usage(m.Usage), Condition: m.Cond}
		}
		iod.byUID[uid] = IODEntry{Title: entry.Title, Modules: modules}
	}

	var rawModules map[string]map[string]rawModuleAttr
	if err := json.Unmarshal(moduleJSON, &rawModules); err != nil {
		return nil, nil, fmt.Errorf("parsing module spec JSON: %w", err)
	}
	modules := &ModuleSpecs{byRef: make(map[string]ModuleEntry, len(rawModules))}
	for ref, attrs := range rawModules {
		entry := make(ModuleEntry, len(attrs))
		for tagStr, a := range attrs {
			entry[tagStr] = Attribute{Type: AttrType(a.Type), Condition: a.Cond}
		}
		modules.byRef[ref] = entry
	}

	return iod, modules, nil
}
