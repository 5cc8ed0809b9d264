package doctor

// Doctor is one entry of the mock directory. Fees keeps the display string
// form ("BDT <n>"); numeric comparisons parse it on the fly.
type Doctor struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Specialty      string  `json:"specialty"`
	Qualifications string  `json:"qualifications"`
	Location       string  `json:"location"`
	Rating         float64 `json:"rating"`
	Experience     string  `json:"experience"`
	Fees           string  `json:"fees"`
	Availability   string  `json:"availability"`
	Image          string  `json:"image,omitempty"`
}

// MaxFeeSentinel is the top of the fee slider; a max-fee filter at the
// sentinel filters nothing.
const MaxFeeSentinel = 2000

// Directory is the fixed in-memory dataset served by the doctor endpoints.
var Directory = []Doctor{
	{
		ID: 1, Name: "Dr. Ayesha Siddiqua", Specialty: "Cardiology",
		Qualifications: "MBBS, FCPS (Cardiology)", Location: "Dhanmondi, Dhaka",
		Rating: 4.9, Experience: "15 years", Fees: "BDT 1500",
		Availability: "Sun-Thu, 5pm-9pm",
	},
	{
		ID: 2, Name: "Dr. Mahmudul Hasan", Specialty: "Medicine",
		Qualifications: "MBBS, MD (Internal Medicine)", Location: "Uttara, Dhaka",
		Rating: 4.7, Experience: "12 years", Fees: "BDT 1000",
		Availability: "Sat-Wed, 6pm-10pm",
	},
	{
		ID: 3, Name: "Dr. Nusrat Jahan", Specialty: "Dermatology",
		Qualifications: "MBBS, DDV", Location: "Gulshan, Dhaka",
		Rating: 4.8, Experience: "10 years", Fees: "BDT 1200",
		Availability: "Sun-Thu, 4pm-8pm",
	},
	{
		ID: 4, Name: "Dr. Rafiqul Islam", Specialty: "Orthopedics",
		Qualifications: "MBBS, MS (Ortho)", Location: "Mirpur, Dhaka",
		Rating: 4.5, Experience: "18 years", Fees: "BDT 800",
		Availability: "Sat-Thu, 5pm-9pm",
	},
	{
		ID: 5, Name: "Dr. Farhana Akter", Specialty: "Gynecology",
		Qualifications: "MBBS, FCPS (Gynae & Obs)", Location: "Dhanmondi, Dhaka",
		Rating: 4.6, Experience: "14 years", Fees: "BDT 1200",
		Availability: "Sun-Wed, 3pm-7pm",
	},
	{
		ID: 6, Name: "Dr. Tanvir Ahmed", Specialty: "Neurology",
		Qualifications: "MBBS, MD (Neurology)", Location: "Banani, Dhaka",
		Rating: 4.9, Experience: "16 years", Fees: "BDT 2000",
		Availability: "Sat-Tue, 6pm-9pm",
	},
	{
		ID: 7, Name: "Dr. Sharmin Sultana", Specialty: "Pediatrics",
		Qualifications: "MBBS, DCH", Location: "Uttara, Dhaka",
		Rating: 4.8, Experience: "11 years", Fees: "BDT 900",
		Availability: "Sun-Thu, 10am-1pm",
	},
	{
		ID: 8, Name: "Dr. Kamrul Hassan", Specialty: "Cardiology",
		Qualifications: "MBBS, D.Card", Location: "Mirpur, Dhaka",
		Rating: 4.4, Experience: "9 years", Fees: "BDT 700",
		Availability: "Sat-Wed, 5pm-8pm",
	},
	{
		ID: 9, Name: "Dr. Sadia Afrin", Specialty: "Medicine",
		Qualifications: "MBBS, FCPS (Medicine)", Location: "Gulshan, Dhaka",
		Rating: 4.3, Experience: "8 years", Fees: "BDT 600",
		Availability: "Sun-Thu, 9am-12pm",
	},
	{
		ID: 10, Name: "Dr. Imran Chowdhury", Specialty: "Orthopedics",
		Qualifications: "MBBS, D.Ortho", Location: "Banani, Dhaka",
		Rating: 4.6, Experience: "13 years", Fees: "BDT 1100",
		Availability: "Sat-Thu, 4pm-7pm",
	},
}
