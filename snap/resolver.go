package snap

// Match pairs a group with the single argument it resolved to.
type Match struct {
	Group    Group
	Argument *Argument
}

// Values returns the matched values as strings.
func (m Match) Values() []string {
	return m.Group.ValueTexts()
}

// Ambiguity is a group whose name matched more than one argument.
type Ambiguity struct {
	Group      Group
	Candidates []*Argument
}

// Resolution is the outcome of matching groups against a model.
type Resolution struct {
	Groups    []Group
	Matches   []Match
	Ambiguous []Ambiguity
	Undefined []Group
	Missing   []*Argument
}

// Resolve matches every named group against the model. Program-path and
// unnamed groups are always defined and never matched.
func Resolve(groups []Group, model *ParseModel) *Resolution {
	res := &Resolution{Groups: groups}
	matched := make(map[*Argument]bool)

	for _, g := range groups {
		if !g.IsNamed() {
			continue
		}
		args := matchingArguments(model, g.Key.Text)
		switch len(args) {
		case 0:
			res.Undefined = append(res.Undefined, g)
		case 1:
			res.Matches = append(res.Matches, Match{Group: g, Argument: args[0]})
			matched[args[0]] = true
		default:
			res.Ambiguous = append(res.Ambiguous, Ambiguity{Group: g, Candidates: args})
		}
	}

	for _, arg := range model.Arguments {
		if arg.Required && !matched[arg] {
			res.Missing = append(res.Missing, arg)
		}
	}
	return res
}

// MatchFor returns the match for arg, if it was supplied.
func (r *Resolution) MatchFor(arg *Argument) (Match, bool) {
	for _, m := range r.Matches {
		if m.Argument == arg {
			return m, true
		}
	}
	return Match{}, false
}

func (r *Resolution) unnamedGroups() []Group {
	var out []Group
	for _, g := range r.Groups {
		if g.IsUnnamed() {
			out = append(out, g)
		}
	}
	return out
}

// UnnamedValues returns the values of every unnamed group in order.
func (r *Resolution) UnnamedValues() []string {
	var values []string
	for _, g := range r.unnamedGroups() {
		values = append(values, g.ValueTexts()...)
	}
	return values
}

// LeadingUnnamedValues returns unnamed values appearing before the first
// named argument. With no named arguments every unnamed value is leading.
func (r *Resolution) LeadingUnnamedValues() []string {
	var values []string
	for _, g := range r.Groups {
		if g.IsNamed() {
			break
		}
		if g.IsUnnamed() {
			values = append(values, g.ValueTexts()...)
		}
	}
	return values
}

// TrailingUnnamedValues returns unnamed values appearing after the last named
// argument. Empty when there are no named arguments.
func (r *Resolution) TrailingUnnamedValues() []string {
	last := -1
	for i, g := range r.Groups {
		if g.IsNamed() {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	var values []string
	for _, g := range r.Groups[last+1:] {
		if g.IsUnnamed() {
			values = append(values, g.ValueTexts()...)
		}
	}
	return values
}
