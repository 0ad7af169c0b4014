package transcoder

// debug copies the three debug lists: line numbers, local variables and
// upvalue names.
func (t *Transcoder) debug(path []string) error {
	n, err := t.copyCount(path, "line info count")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := t.copyInt(path, "line info"); err != nil {
			return err
		}
	}

	n, err = t.copyCount(path, "local variable count")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := t.copyString(path, "local variable name"); err != nil {
			return err
		}
		if _, err := t.copyInt(path, "local variable start"); err != nil {
			return err
		}
		if _, err := t.copyInt(path, "local variable end"); err != nil {
			return err
		}
	}

	n, err = t.copyCount(path, "upvalue name count")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := t.copyString(path, "upvalue name"); err != nil {
			return err
		}
	}
	return nil
}
