// Package validator runs the IOD conformance check (spec.md §4.5): given a
// dataset and the SOP Class it claims to be, resolve its IOD, walk the
// modules that IOD includes, and classify every attribute each included
// module requires as present, missing, empty, or not allowed.
package validator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jpfielding/dicomval/pkg/dicomval/condition"
	"github.com/jpfielding/dicomval/pkg/dicomval/dataset"
	"github.com/jpfielding/dicomval/pkg/dicomval/dictionary"
	"github.com/jpfielding/dicomval/pkg/dicomval/specdata"
)

// sopClassUIDTag is (0008,0016), present in every DICOM dataset that claims
// conformance to an IOD.
var sopClassUIDTag = dictionary.Tag{Group: 0x0008, Element: 0x0016}

// Report is the outcome of validating one dataset against its IOD. Fatal is
// set (and the other fields left empty) when the dataset cannot even be
// matched to a known IOD. Each slice is sorted and de-duplicated by tag
// string; a nil slice means that category had nothing to report.
type Report struct {
	Fatal      string
	Missing    []string
	Empty      []string
	NotAllowed []string
}

// IsFatal reports whether validation could not proceed past IOD resolution.
func (r Report) IsFatal() bool { return r.Fatal != "" }

// IsClean reports whether the dataset conforms fully: no fatal error and
// nothing in any category.
func (r Report) IsClean() bool {
	return !r.IsFatal() && len(r.Missing) == 0 && len(r.Empty) == 0 && len(r.NotAllowed) == 0
}

// Validate checks view against the IOD its (0008,0016) SOP Class UID names,
// using iod/modules as the specification tables and dict to resolve any
// attribute names appearing in condition text. ctx is threaded through for
// API consistency with the rest of the module; validation does no I/O and
// never observes cancellation.
func Validate(ctx context.Context, view dataset.View, iod *specdata.IODSpecs, modules *specdata.ModuleSpecs, dict *dictionary.Index) (Report, error) {
	if !view.Has(sopClassUIDTag) {
		return Report{Fatal: "dataset has no SOP Class UID, cannot resolve an IOD"}, nil
	}
	uid, ok := view.ValueAt(sopClassUIDTag, 0)
	if !ok || uid == "" {
		return Report{Fatal: "dataset has no SOP Class UID, cannot resolve an IOD"}, nil
	}
	entry, ok := iod.Lookup(uid)
	if !ok {
		return Report{Fatal: fmt.Sprintf("unknown SOP Class UID %q", uid)}, nil
	}

	parser := condition.NewParser(dict)
	acc := &accumulator{}

	for ref, modRef := range entry.Modules {
		included := moduleIncluded(modRef, view, parser)
		slog.Debug("module inclusion", "module", ref, "usage", modRef.Usage, "included", included)
		if !included {
			continue
		}
		moduleEntry, ok := modules.Lookup(ref)
		if !ok {
			slog.Warn("IOD references unknown module", "module", ref)
			continue
		}
		validateModule(moduleEntry, view, modules, parser, acc)
	}

	return acc.report(), nil
}

// moduleIncluded resolves a module's inclusion per its usage: M always, U
// never, C per its condition (an undetermined condition includes the module,
// matching "unverifiable conditions are treated as satisfied").
func moduleIncluded(ref specdata.ModuleRef, view dataset.View, parser *condition.Parser) bool {
	switch ref.Usage {
	case specdata.UsageM:
		return true
	case specdata.UsageU:
		return false
	case specdata.UsageC:
		cond := parser.Parse(ref.Condition)
		return condition.Evaluate(cond.Tree, view) != condition.False
	default:
		return false
	}
}

// accumulator collects classification results across every included module,
// de-duplicating by tag since the same attribute can appear in more than one
// included module.
type accumulator struct {
	missing    map[string]bool
	empty      map[string]bool
	notAllowed map[string]bool
}

func (a *accumulator) add(category, tagStr string) {
	var set *map[string]bool
	switch category {
	case "missing":
		set = &a.missing
	case "empty":
		set = &a.empty
	case "not_allowed":
		set = &a.notAllowed
	default:
		return
	}
	if *set == nil {
		*set = make(map[string]bool)
	}
	(*set)[tagStr] = true
}

func (a *accumulator) report() Report {
	return Report{
		Missing:    sortedKeys(a.missing),
		Empty:      sortedKeys(a.empty),
		NotAllowed: sortedKeys(a.notAllowed),
	}
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// validateModule classifies every attribute in entry against view, adding
// results to acc. Attributes declaring Items recurse into each sequence
// item against those named modules.
func validateModule(entry specdata.ModuleEntry, view dataset.View, modules *specdata.ModuleSpecs, parser *condition.Parser, acc *accumulator) {
	for tagStr, attr := range entry {
		t, ok := dictionary.ParseTagString(tagStr)
		if !ok {
			slog.Warn("module spec has unparseable tag", "tag", tagStr)
			continue
		}
		category := classifyAttribute(t, attr, view, parser)
		if category != "" {
			acc.add(category, tagStr)
		}
		if len(attr.Items) > 0 && view.Has(t) && !view.IsEmpty(t) {
			validateSequenceItems(attr, view.Items(t), modules, parser, acc)
		}
	}
}

// validateSequenceItems recurses into each item of a sequence attribute,
// applying every module named in attr.Items against that item's own view.
func validateSequenceItems(attr specdata.Attribute, items []dataset.View, modules *specdata.ModuleSpecs, parser *condition.Parser, acc *accumulator) {
	for _, item := range items {
		for _, ref := range attr.Items {
			moduleEntry, ok := modules.Lookup(ref)
			if !ok {
				slog.Warn("sequence attribute references unknown item module", "module", ref)
				continue
			}
			validateModule(moduleEntry, item, modules, parser, acc)
		}
	}
}

// classifyAttribute applies the type/condition classification table
// (spec.md §4.5) to one attribute against view, returning "missing",
// "not_allowed", or "" (conforms / nothing to report). A required attribute
// that is present but empty is reported as "missing"; nothing is classified
// as "empty", so Report.Empty stays nil.
func classifyAttribute(t dictionary.Tag, attr specdata.Attribute, view dataset.View, parser *condition.Parser) string {
	present := view.Has(t)
	isEmpty := present && view.IsEmpty(t)

	switch attr.Type {
	case specdata.Type1:
		return classifyFixed(present, isEmpty, true)
	case specdata.Type2:
		return classifyFixed(present, isEmpty, false)
	case specdata.Type3:
		return ""
	case specdata.Type1C:
		return classifyConditional(present, isEmpty, true, attr, view, parser)
	case specdata.Type2C:
		return classifyConditional(present, isEmpty, false, attr, view, parser)
	default:
		return ""
	}
}

// classifyFixed applies spec.md §4.5's type-1/type-2 status table: absence
// is always missing; emptiness is missing when required (type 1) but ok
// when the type only requires presence (type 2).
func classifyFixed(present, isEmpty, requiredWhenPresent bool) string {
	if !present {
		return "missing"
	}
	if isEmpty && requiredWhenPresent {
		return "missing"
	}
	return ""
}

func classifyConditional(present, isEmpty, requiredWhenPresent bool, attr specdata.Attribute, view dataset.View, parser *condition.Parser) string {
	cond := parser.Parse(attr.Condition)
	result := condition.Evaluate(cond.Tree, view)
	switch result {
	case condition.True:
		return classifyFixed(present, isEmpty, requiredWhenPresent)
	case condition.False:
		if !present {
			return ""
		}
		// MU ("may be present otherwise", no further test) and a satisfied
		// MC "other_condition" tail both mean presence is unconditionally
		// fine even though the primary condition didn't hold; only a bare
		// MN condition forbids presence outright.
		if cond.Type == condition.TypeMU {
			return ""
		}
		if cond.Type == condition.TypeMC && condition.Evaluate(cond.OtherCondition, view) == condition.True {
			return ""
		}
		return "not_allowed"
	default: // UndeterminedResult: unverifiable conditions are treated as satisfied
		return ""
	}
}
