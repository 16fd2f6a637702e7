package snap

// applyFixups runs the three group rewrites in order. The input slice is not
// modified.
func applyFixups(groups []Group, model *ParseModel) []Group {
	groups = splitProgramPath(groups)
	groups = resolveTrailingValues(groups, model)
	return consolidateDuplicates(groups, model)
}

// splitProgramPath moves values the grouper attached to the program path into
// an unnamed group right after it.
func splitProgramPath(groups []Group) []Group {
	if len(groups) == 0 || !groups[0].IsProgramPath() || len(groups[0].Values) == 0 {
		return groups
	}
	out := make([]Group, 0, len(groups)+1)
	out = append(out, Group{Key: groups[0].Key}, unnamedGroup(groups[0].Values))
	return append(out, groups[1:]...)
}

// resolveTrailingValues detaches values the last named argument cannot take.
// A One argument keeps its first value, a Zero argument keeps none; the rest
// become a trailing unnamed group.
func resolveTrailingValues(groups []Group, model *ParseModel) []Group {
	if len(groups) == 0 {
		return groups
	}
	last := groups[len(groups)-1]
	if !last.IsNamed() || len(last.Values) == 0 {
		return groups
	}
	args := matchingArguments(model, last.Key.Text)
	if len(args) != 1 {
		return groups
	}

	var keep int
	switch args[0].Cardinality {
	case One:
		keep = 1
	case Zero:
		keep = 0
	default:
		return groups
	}
	if len(last.Values) <= keep {
		return groups
	}

	out := make([]Group, 0, len(groups)+1)
	out = append(out, groups[:len(groups)-1]...)
	return append(out,
		Group{Key: last.Key, Values: last.Values[:keep:keep]},
		unnamedGroup(last.Values[keep:]),
	)
}

// consolidateDuplicates merges every group resolving to the same argument into
// the first occurrence, concatenating values in order. Unnamed, program-path,
// ambiguous and undefined groups pass through untouched.
func consolidateDuplicates(groups []Group, model *ParseModel) []Group {
	canonical := make([]*Argument, len(groups))
	positions := make(map[*Argument][]int)
	for i, g := range groups {
		if !g.IsNamed() {
			continue
		}
		if args := matchingArguments(model, g.Key.Text); len(args) == 1 {
			canonical[i] = args[0]
			positions[args[0]] = append(positions[args[0]], i)
		}
	}

	out := make([]Group, 0, len(groups))
	for i, g := range groups {
		arg := canonical[i]
		if arg == nil {
			out = append(out, g)
			continue
		}
		idx := positions[arg]
		if idx[0] != i {
			continue
		}
		if len(idx) == 1 {
			out = append(out, g)
			continue
		}
		var values []Token
		for _, j := range idx {
			values = append(values, groups[j].Values...)
		}
		out = append(out, Group{Key: g.Key, Values: values})
	}
	return out
}
