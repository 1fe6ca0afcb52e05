package lnk

func Fuzz(data []byte) int {
	s, err := NewBytes(data, &Options{SkipExtraData: false})
	if err != nil {
		return 0
	}
	if len(s.Anomalies) > 0 {
		return 0
	}
	return 1
}
