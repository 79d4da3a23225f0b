package optimize

// SampleWords returns the built-in evaluation wordlist used when the
// caller supplies no sample. It mixes lengths, cases, digits, and
// punctuation so rules that differ in behavior are unlikely to
// collide on the whole list.
func SampleWords() []string {
	return []string{
		"password", "admin", "user", "test", "root", "guest", "demo",
		"login", "welcome", "hello", "master", "system", "super",

		"a", "b", "c", "x", "y", "z",

		"cat", "dog", "sun", "fun", "run", "top", "hot",

		"apple", "table", "chair", "mouse", "keyboard",

		"corporation", "administrator", "technology", "development",

		"PassWord", "AdmiN", "TeSt", "RoOt",

		"test123", "admin456", "pass789", "user000",

		"pass!", "admin@", "test#", "user$",

		"john", "mary", "david", "sarah", "michael", "jennifer",

		"2020", "2021", "2022", "2023", "2024", "2025",

		"!", "@", "#", "$", "1", "2", "3",
	}
}
