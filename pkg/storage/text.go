package storage

// LoadText returns the raw content of a text file.
func (s *Storage) LoadText(path string) (string, error) {
	b, err := s.readFile(path)
	if err != nil {
		return "", err
	}
	s.loaded(Text, path)
	return string(b), nil
}

// SaveText writes text verbatim.
func (s *Storage) SaveText(text, path string) error {
	if err := s.writeFile(path, []byte(text)); err != nil {
		return err
	}
	s.saved(Text, path, len(text))
	return nil
}
