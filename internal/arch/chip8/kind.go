package chip8

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Base instruction set.
const (
	Invalid         Kind = iota
	ClearScreen          // 00E0
	Return               // 00EE
	Jump                 // 1NNN
	Call                 // 2NNN
	SkipEqualImm         // 3XNN
	SkipNotEqualImm      // 4XNN
	SkipEqual            // 5XY0
	LoadImm              // 6XNN
	AddImm               // 7XNN
	Move                 // 8XY0
	Or                   // 8XY1
	And                  // 8XY2
	Xor                  // 8XY3
	Add                  // 8XY4
	Sub                  // 8XY5
	ShiftRight           // 8XY6
	SubReverse           // 8XY7
	ShiftLeft            // 8XYE
	SkipNotEqual         // 9XY0
	LoadIndex            // ANNN
	JumpOffset           // BNNN
	Random               // CXNN
	Draw                 // DXYN
	SkipKey              // EX9E
	SkipNotKey           // EXA1
	LoadDelay            // FX07
	WaitKey              // FX0A
	SetDelay             // FX15
	SetSound             // FX18
	AddIndex             // FX1E
	SmallFont            // FX29
	BCD                  // FX33
	Store                // FX55
	Load                 // FX65

	// SUPER-CHIP extensions.
	ScrollDown  // 00CN
	ScrollRight // 00FB
	ScrollLeft  // 00FC
	Exit        // 00FD
	LowRes      // 00FE
	HighRes     // 00FF
	LargeFont   // FX30
	SaveFlags   // FX75
	LoadFlags   // FX85

	// XO-CHIP extensions.
	ScrollUp     // 00DN
	StoreRange   // 5XY2
	LoadRange    // 5XY3
	LoadLongI    // F000 NNNN
	SelectPlanes // FN01
	LoadAudio    // F002
	SetPitch     // FX3A
)
