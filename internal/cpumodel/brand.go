package cpumodel

// BeautifyBrand condenses an x86 brand string to the processor name, e.g.
// "Intel(R) Core(TM) i7 CPU X 990 @ 3.47GHz" becomes "Core i7 990X".
// Trademark marks, vendor names, generic words such as "CPU" or "Processor",
// core counts and the frequency are dropped. An empty result means nothing
// but the frequency was left.
func BeautifyBrand(brand string) string {
	b := []byte(brand)
	st := brandState{sep: -1}
	st.resetPrevious()
	st.with, st.apu = -1, -1

	// Parenthesised text, tabs, NULs and '@' become spaces.
	inParens := false
	for i, c := range b {
		if c == '(' {
			inParens = true
		}
		if c == '\t' || c == 0 || c == '@' || inParens {
			b[i] = ' '
		}
		if c == ')' {
			inParens = false
		} else if c == '@' {
			st.sep = i
		}
	}

	start := -1
	for i := 0; i <= len(b); i++ {
		if i < len(b) && b[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			st.transform(b, start, i)
			start = -1
		}
	}

	if st.sep >= 0 && isAll(b[:st.sep], ' ') {
		return ""
	}
	return compactWords(b)
}

// brandState tracks words that are erased together with a later word.
// Positions are byte offsets, -1 when unset.
type brandState struct {
	sep         int
	parsedModel bool
	with        int
	apu         int

	upperLetter int
	dual        int
	core        int
	model       int
	mmx         int
}

func (s *brandState) resetPrevious() {
	s.upperLetter, s.dual, s.core, s.model, s.mmx = -1, -1, -1, -1, -1
}

func erase(b []byte, start, end int) {
	for i := start; i < end; i++ {
		b[i] = ' '
	}
}

func (s *brandState) transform(b []byte, start, end int) {
	prev := *s
	s.resetPrevious()

	// Everything after the frequency separator goes once a model number has
	// been seen.
	if s.sep >= 0 && start > s.sep && s.parsedModel {
		erase(b, start, end)
		return
	}

	// Trademark suffix on early AMD and Cyrix names, e.g. "AMD-K6tm".
	if end-start > 2 && (isDigit(b[end-3]) || isUpper(b[end-3])) && string(b[end-2:end]) == "tm" {
		erase(b, end-2, end)
		end -= 2
	}
	if end-start > 4 && string(b[start:start+4]) == "AMD-" {
		erase(b, start, start+4)
		start += 4
	}

	word := string(b[start:end])
	switch word {
	case "CPU", "AMD", "VIA", "IDT", "Intel", "Cyrix", "family", "Genuine",
		"Processor", "processor", "Transmeta":
		erase(b, start, end)
		return
	case "QuadCore", "Six-Core", "Dual-Core", "Quad-Core", "Eight-Core", "Triple-Core":
		erase(b, start, end)
		s.core = end
		return
	case "w/":
		s.with = start
		return
	case "MMX":
		s.mmx = start
		return
	case "APU":
		erase(b, start, end)
		s.apu = end
		return
	case "model":
		s.model = start
		return
	case "Dual":
		s.dual = start
	case "Core":
		if prev.dual >= 0 {
			erase(b, prev.dual, end)
			s.core = end
			return
		}
	case "Mobile":
		if prev.core >= 0 {
			erase(b, start, end)
			return
		}
	case "unknown":
		if prev.model >= 0 {
			erase(b, prev.model, end)
			return
		}
	case "Enhanced":
		if prev.mmx >= 0 {
			erase(b, prev.mmx, end)
			return
		}
	case "Graphics":
		if s.apu >= 0 {
			erase(b, s.apu, end)
			s.apu = -1
			return
		}
	case "extensions":
		if s.with >= 0 {
			erase(b, s.with, end)
			s.with = -1
			return
		}
	}
	if len(word) == 1 && isUpper(word[0]) {
		s.upperLetter = start
		return
	}

	if isAll(b[start:end], '0') {
		erase(b, start, end)
		return
	}

	// "X 990" becomes "990X": the single letter moves behind the number.
	if prev.upperLetter >= 0 && end-start >= 2 && end-start <= 5 && isNumber(b[start:end]) {
		letter := b[prev.upperLetter]
		b[prev.upperLetter] = ' '
		copy(b[start-1:], b[start:end])
		start--
		b[end-1] = letter
	}

	if s.sep >= 0 && isModelNumber(b[start:end]) {
		s.parsedModel = true
	}
}

// compactWords joins words with single spaces, without a space on either
// side of a dash that begins or ends a word.
func compactWords(b []byte) string {
	out := make([]byte, 0, len(b))
	prevEndsWithDash := true
	start := -1
	for i := 0; i <= len(b); i++ {
		if i < len(b) && b[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start < 0 {
			continue
		}
		if b[start] != '-' && !prevEndsWithDash {
			out = append(out, ' ')
		}
		out = append(out, b[start:i]...)
		prevEndsWithDash = b[i-1] == '-'
		start = -1
	}
	return string(out)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isAll(b []byte, c byte) bool {
	for _, x := range b {
		if x != c {
			return false
		}
	}
	return true
}

func isNumber(b []byte) bool {
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}

// isModelNumber reports whether b contains two consecutive digits.
func isModelNumber(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if isDigit(b[i]) && isDigit(b[i-1]) {
			return true
		}
	}
	return false
}
