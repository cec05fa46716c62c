package scenario

// AgeCase is one fixed age and the lower bucket whose neighbors bracket it
type AgeCase struct {
	Age    int
	Bucket int
}

// AgeSweep lists the decade midpoints 15..85 with their lower bucket index.
// Each age sits strictly between bucket k and bucket k+1.
func AgeSweep() []AgeCase {
	cases := make([]AgeCase, 0, 8)
	for bucket := 0; bucket <= 7; bucket++ {
		cases = append(cases, AgeCase{Age: 15 + 10*bucket, Bucket: bucket})
	}
	return cases
}
