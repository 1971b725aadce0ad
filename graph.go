package compositor

// sortOperations returns the operations in dependency order: every
// operation appears after all of its inputs. Inputs outside ops are
// ignored (they belong to other groups). Returns ErrCyclicGraph when the
// input edges form a cycle.
func sortOperations(ops []Operation) ([]Operation, error) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make(map[Operation]int, len(ops))
	member := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		member[op] = true
	}

	sorted := make([]Operation, 0, len(ops))

	var visit func(op Operation) error
	visit = func(op Operation) error {
		switch state[op] {
		case done:
			return nil
		case visiting:
			return ErrCyclicGraph
		}
		state[op] = visiting
		for _, in := range op.Inputs() {
			if in == nil || !member[in] {
				continue
			}
			if err := visit(in); err != nil {
				return err
			}
		}
		state[op] = done
		sorted = append(sorted, op)
		return nil
	}

	for _, op := range ops {
		if err := visit(op); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// consumerCounts returns, for each operation, how many times it appears
// as an input of other operations in ops. Duplicate edges count twice:
// the count is a release budget, not a fan-out metric.
func consumerCounts(ops []Operation) map[Operation]int {
	counts := make(map[Operation]int, len(ops))
	for _, op := range ops {
		for _, in := range op.Inputs() {
			if in != nil {
				counts[in]++
			}
		}
	}
	return counts
}
