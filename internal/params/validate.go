package params

// ValidateArray fails unless v is a list.
func ValidateArray(name string, v any) error {
	if _, ok := asList(v); !ok {
		return &ValidationError{Parameter: name, Value: v, Expected: ExpectArray}
	}
	return nil
}

// ValidateValue checks v against the declared kind of name.
func ValidateValue(name string, v any) error {
	kind, ok := KindOf(name)
	if !ok {
		return &UnknownParameterError{Name: name}
	}

	var err error
	switch kind {
	case KindString:
		_, err = ToString(name, v)
	case KindScalar:
		_, err = ToScalar(name, v)
	case KindBool:
		_, err = ToBool(name, v)
	case KindInt:
		_, err = ToInt(name, v)
	case KindStringList:
		_, err = ToStrings(name, v)
	case KindIntList:
		_, err = ToInts(name, v)
	case KindHash:
		_, err = ToHash(name, v)
	}
	return err
}

// Validate checks every set parameter in raw. Parameters are checked in
// name order so the reported error is stable. Nil values mean "use the
// default" and are skipped.
func Validate(raw Raw) error {
	for _, name := range raw.Names() {
		v := raw[name]
		if v == nil {
			if _, ok := KindOf(name); !ok {
				return &UnknownParameterError{Name: name}
			}
			continue
		}
		if err := ValidateValue(name, v); err != nil {
			return err
		}
	}
	return nil
}
