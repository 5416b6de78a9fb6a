package lpdf

import (
	"strconv"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/swerling/pdftoedn/engine"
)

// destFromValue decodes an explicit destination. Both bare arrays and
// dictionary destinations (array under /D) are accepted. A leading
// integer marks a remote destination with a 0-based page number, which
// is normalized to 1-based here; a leading page dict yields a page
// object reference for catalog lookup.
func (d *Document) destFromValue(v pdflib.Value) *engine.Dest {
	if v.Kind() == pdflib.Dict {
		v = v.Key("D")
	}
	if v.Kind() != pdflib.Array || v.Len() == 0 {
		return nil
	}
	dest := &engine.Dest{}
	switch first := v.Index(0); first.Kind() {
	case pdflib.Integer:
		dest.PageNum = int(first.Int64()) + 1
	case pdflib.Dict:
		if ref, ok := leadingRef(v.String()); ok {
			dest.PageRef = &ref
		}
	}
	switch v.Index(1).Name() {
	case "XYZ":
		setCoord(v.Index(2), &dest.Left, &dest.HasLeft)
		setCoord(v.Index(3), &dest.Top, &dest.HasTop)
		setZoom(v.Index(4), dest)
	case "FitH", "FitBH":
		setCoord(v.Index(2), &dest.Top, &dest.HasTop)
	case "FitV", "FitBV":
		setCoord(v.Index(2), &dest.Left, &dest.HasLeft)
	case "FitR":
		setCoord(v.Index(2), &dest.Left, &dest.HasLeft)
		setCoord(v.Index(5), &dest.Top, &dest.HasTop)
	}
	return dest
}

// setCoord copies a numeric coordinate. Null members mean "leave
// unchanged" and are skipped.
func setCoord(v pdflib.Value, out *float64, has *bool) {
	if v.Kind() == pdflib.Integer || v.Kind() == pdflib.Real {
		*out = v.Float64()
		*has = true
	}
}

// setZoom records a zoom factor. Zero means "unchanged" and is treated
// like null.
func setZoom(v pdflib.Value, dest *engine.Dest) {
	if v.Kind() != pdflib.Integer && v.Kind() != pdflib.Real {
		return
	}
	if z := v.Float64(); z != 0 {
		dest.Zoom = z
		dest.HasZoom = true
	}
}

// leadingRef parses the object reference the library prints for the
// first member of an array whose head is an unresolved indirect
// reference, e.g. "[5 0 R /XYZ ...]".
func leadingRef(s string) (engine.Ref, bool) {
	fields := strings.Fields(strings.TrimPrefix(s, "["))
	if len(fields) < 3 || fields[2] != "R" {
		return engine.Ref{}, false
	}
	num, err1 := strconv.Atoi(fields[0])
	gen, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return engine.Ref{}, false
	}
	return engine.Ref{Num: num, Gen: gen}, true
}

// destParts splits a /Dest or /D value into its explicit and named
// forms. Named destinations appear as names or byte strings.
func (d *Document) destParts(v pdflib.Value) (*engine.Dest, string) {
	switch v.Kind() {
	case pdflib.Name:
		return nil, v.Name()
	case pdflib.String:
		return nil, v.Text()
	case pdflib.Array, pdflib.Dict:
		return d.destFromValue(v), ""
	}
	return nil, ""
}

// actionFromDict decodes an action dictionary into the tagged action
// variant. Unrecognized subtypes are preserved by kind so callers can
// report them.
func (d *Document) actionFromDict(a pdflib.Value) engine.Action {
	switch kind := a.Key("S").Name(); kind {
	case "GoTo":
		dest, name := d.destParts(a.Key("D"))
		return engine.GoToAction{Dest: dest, DestName: name}
	case "GoToR":
		dest, name := d.destParts(a.Key("D"))
		return engine.GoToFileAction{Filename: fileSpec(a.Key("F")), Dest: dest, DestName: name}
	case "URI":
		return engine.URIAction{URI: a.Key("URI").Text()}
	case "":
		return nil
	default:
		return engine.UnknownAction{Kind: kind}
	}
}

// fileSpec extracts the target filename from a file specification,
// which may be a bare string or a filespec dictionary.
func fileSpec(v pdflib.Value) string {
	if v.Kind() == pdflib.Dict {
		if uf := v.Key("UF"); uf.Kind() == pdflib.String {
			return uf.Text()
		}
		v = v.Key("F")
	}
	if v.Kind() == pdflib.String {
		return v.Text()
	}
	return ""
}
