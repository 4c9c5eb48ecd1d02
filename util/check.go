package util

// Check enforces that its argument is nil, panicking otherwise.
func Check(err interface{}) {
	if err != nil {
		panic(err)
	}
}
