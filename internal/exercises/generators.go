package exercises

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cogniplay/backend/internal/models"
	"github.com/google/uuid"
)

// Built-in generators produce exercises without any network dependency.
// Logic exercises prefer the generation service when it is available; these
// banks double as its fallback.

func generateBuiltin(category models.Category, difficulty int) *models.Exercise {
	switch category {
	case models.CategoryMemory:
		return generateMemory(difficulty)
	case models.CategoryLogic:
		return generateLogicBuiltin(difficulty)
	case models.CategoryProblemSolving:
		return generateProblemSolving(difficulty)
	case models.CategoryPatternRecognition:
		return generatePattern(difficulty)
	case models.CategoryAttention:
		return generateAttention(difficulty)
	default:
		return generateMemory(difficulty)
	}
}

// ── Memory ──────────────────────────────────────────────

func generateMemory(difficulty int) *models.Exercise {
	generators := []func(int) *models.Exercise{
		memorySequenceRecall,
		memoryWordList,
		memoryNumber,
		memoryPattern,
	}
	return generators[rand.Intn(len(generators))](difficulty)
}

var sequenceItems = []string{"🔴", "🔵", "🟢", "🟡", "🟣", "🟠", "⚫", "⚪"}

func memorySequenceRecall(difficulty int) *models.Exercise {
	lengthMap := map[int]int{1: 3, 2: 4, 3: 6, 4: 8, 5: 10}
	length, ok := lengthMap[difficulty]
	if !ok {
		length = 5
	}

	sequence := make([]string, length)
	for i := range sequence {
		sequence[i] = sequenceItems[rand.Intn(len(sequenceItems))]
	}
	answer := strings.Join(sequence, " ")

	question := fmt.Sprintf(`Memory Challenge - Sequence Recall

Study this sequence for %d seconds:

%s

After the time is up, type the sequence back exactly as shown (include spaces between items).`, 5+difficulty, answer)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryMemory,
		Subtype:          "sequence_recall",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: answer},
		TimeLimitSeconds: 60,
		Hints: []string{
			fmt.Sprintf("The sequence has %d items", length),
			fmt.Sprintf("It starts with %s", sequence[0]),
			fmt.Sprintf("It ends with %s", sequence[length-1]),
		},
	}
}

var wordPool = []string{
	"apple", "mountain", "computer", "elephant", "guitar",
	"ocean", "bicycle", "telephone", "butterfly", "camera",
	"pizza", "rocket", "library", "diamond", "forest",
	"lighthouse", "saxophone", "tornado", "universe", "waterfall",
	"microscope", "adventure", "sculpture", "harmony", "eclipse",
}

func memoryWordList(difficulty int) *models.Exercise {
	countMap := map[int]int{1: 5, 2: 7, 3: 10, 4: 15, 5: 20}
	count, ok := countMap[difficulty]
	if !ok {
		count = 10
	}

	perm := rand.Perm(len(wordPool))
	words := make([]string, count)
	for i := 0; i < count; i++ {
		words[i] = wordPool[perm[i]]
	}

	question := fmt.Sprintf(`Memory Challenge - Word List

Study these %d words for %d seconds:

%s

After the time is up, type as many words as you can remember (separated by commas).`, count, 10+difficulty*2, strings.Join(words, ", "))

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryMemory,
		Subtype:          "word_list",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{List: words},
		TimeLimitSeconds: 120,
		Hints: []string{
			fmt.Sprintf("There were %d words total", count),
			fmt.Sprintf("One word started with %q", words[0][:1]),
			fmt.Sprintf("One word was %q", words[rand.Intn(count)]),
		},
	}
}

func memoryNumber(difficulty int) *models.Exercise {
	lengthMap := map[int]int{1: 4, 2: 6, 3: 8, 4: 10, 5: 12}
	length, ok := lengthMap[difficulty]
	if !ok {
		length = 6
	}

	var b strings.Builder
	for i := 0; i < length; i++ {
		fmt.Fprintf(&b, "%d", rand.Intn(10))
	}
	number := b.String()

	question := fmt.Sprintf(`Memory Challenge - Number Sequence

Remember this %d-digit number:

%s

Study it for %d seconds, then type it back.`, length, number, 5+difficulty)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryMemory,
		Subtype:          "number_memory",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: number},
		TimeLimitSeconds: 45,
		Hints: []string{
			fmt.Sprintf("The number has %d digits", length),
			fmt.Sprintf("First digit is %s", number[:1]),
			fmt.Sprintf("Last digit is %s", number[length-1:]),
		},
	}
}

func memoryPattern(difficulty int) *models.Exercise {
	sizeMap := map[int]int{1: 2, 2: 3, 3: 4, 4: 4, 5: 5}
	size, ok := sizeMap[difficulty]
	if !ok {
		size = 3
	}

	symbols := []string{"■", "□"}
	rows := make([]string, size)
	var flat strings.Builder
	for i := 0; i < size; i++ {
		cells := make([]string, size)
		for j := 0; j < size; j++ {
			cells[j] = symbols[rand.Intn(2)]
			flat.WriteString(cells[j])
		}
		rows[i] = strings.Join(cells, " ")
	}

	question := fmt.Sprintf(`Memory Challenge - Pattern Memory

Study this %dx%d pattern for %d seconds:

%s

After time is up, recreate the pattern by typing the symbols row by row (no spaces).
Use ■ for filled squares and □ for empty squares.`, size, size, 8+difficulty*2, strings.Join(rows, "\n"))

	answer := flat.String()
	first := string([]rune(answer)[0])
	last := string([]rune(answer)[size*size-1])

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryMemory,
		Subtype:          "pattern_memory",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: answer},
		TimeLimitSeconds: 90,
		Hints: []string{
			fmt.Sprintf("It's a %dx%d grid", size, size),
			fmt.Sprintf("Top-left corner is %s", first),
			fmt.Sprintf("Bottom-right corner is %s", last),
		},
	}
}

// ── Logic (offline bank) ────────────────────────────────

var logicSubtypes = []string{"syllogism", "deduction", "riddle", "grid_logic"}

func generateLogicBuiltin(difficulty int) *models.Exercise {
	switch logicSubtypes[rand.Intn(len(logicSubtypes))] {
	case "syllogism":
		return logicSyllogism(difficulty)
	case "deduction":
		return logicDeduction(difficulty)
	case "riddle":
		return logicRiddle(difficulty)
	default:
		return logicGrid(difficulty)
	}
}

func logicBuiltinBySubtype(subtype string, difficulty int) *models.Exercise {
	switch subtype {
	case "syllogism":
		return logicSyllogism(difficulty)
	case "deduction":
		return logicDeduction(difficulty)
	case "riddle":
		return logicRiddle(difficulty)
	case "grid_logic":
		return logicGrid(difficulty)
	default:
		return generateLogicBuiltin(difficulty)
	}
}

type syllogismPuzzle struct {
	premises []string
	question string
	answer   string
}

var syllogisms = map[int]syllogismPuzzle{
	1: {
		premises: []string{"All cats are animals.", "All animals need food.", "Fluffy is a cat."},
		question: "Does Fluffy need food?",
		answer:   "yes",
	},
	2: {
		premises: []string{"All managers attend meetings.", "Sarah attends meetings.", "John is not a manager."},
		question: "Does John attend meetings?",
		answer:   "cannot determine",
	},
	3: {
		premises: []string{"No birds are mammals.", "All bats are mammals.", "Some flying creatures are birds."},
		question: "Are all flying creatures bats?",
		answer:   "no",
	},
	4: {
		premises: []string{"All successful projects are well-planned.", "Some well-planned projects have good teams.", "Project X has a good team."},
		question: "Is Project X successful?",
		answer:   "cannot determine",
	},
	5: {
		premises: []string{"No complete solutions are simple.", "All elegant solutions are simple.", "Some working solutions are complete."},
		question: "Can a working solution be elegant?",
		answer:   "cannot determine",
	},
}

func logicSyllogism(difficulty int) *models.Exercise {
	puzzle, ok := syllogisms[difficulty]
	if !ok {
		puzzle = syllogisms[3]
	}

	var b strings.Builder
	b.WriteString("Logic Puzzle - Syllogism\n\nGiven these statements:\n")
	for i, p := range puzzle.premises {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n\nType your answer: Yes / No / Cannot determine", puzzle.question)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryLogic,
		Subtype:          "syllogism",
		Difficulty:       difficulty,
		Question:         b.String(),
		Answer:           models.Answer{Text: puzzle.answer},
		Options:          []string{"Yes", "No", "Cannot determine"},
		TimeLimitSeconds: 60 + difficulty*15,
		Hints: []string{
			"Consider each premise carefully",
			"Draw a diagram if helpful",
			"Check if the conclusion necessarily follows",
		},
	}
}

type deductionPuzzle struct {
	scenario string
	question string
	answer   string
}

var deductions = map[int]deductionPuzzle{
	1: {
		scenario: "Three friends - Alice, Bob, and Carol - each have a different pet: a dog, a cat, and a bird. Alice doesn't have a dog. Bob has a cat.",
		question: "Who has the bird?",
		answer:   "alice",
	},
	2: {
		scenario: "Four people live on different floors of a building (1st to 4th floor). Dan lives above Emma but below Frank. Carol lives on the 1st floor.",
		question: "Which floor does Frank live on?",
		answer:   "4",
	},
	3: {
		scenario: "Five students scored differently on a test. Maya scored higher than Luke but lower than Nina. Oliver scored the lowest. Pam scored between Maya and Nina.",
		question: "Who scored the highest?",
		answer:   "nina",
	},
	4: {
		scenario: "Six coworkers each prefer different lunch spots (A, B, C, D, E, F). Tom doesn't go to A or B. Rita goes to C. Sam goes to a spot alphabetically after Tom's. Quinn goes to E. Uma goes to the last spot alphabetically. Victor goes to the remaining spot.",
		question: "Where does Tom go for lunch?",
		answer:   "d",
	},
	5: {
		scenario: "Seven runners finished a race. Alex finished before Beth but after Cara. Dana finished right after Cara. Emma finished last. Frank finished before Cara but after Gina.",
		question: "Who finished first?",
		answer:   "gina",
	},
}

func logicDeduction(difficulty int) *models.Exercise {
	puzzle, ok := deductions[difficulty]
	if !ok {
		puzzle = deductions[3]
	}

	question := fmt.Sprintf("Logic Puzzle - Deduction\n\n%s\n\n%s\n\nType your answer:", puzzle.scenario, puzzle.question)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryLogic,
		Subtype:          "deduction",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: puzzle.answer},
		TimeLimitSeconds: 90 + difficulty*20,
		Hints: []string{
			"Try writing down what you know",
			"Use process of elimination",
			"Work through the clues step by step",
		},
	}
}

var riddles = map[int]deductionPuzzle{
	1: {scenario: "What has keys but no locks, space but no room, and you can enter but can't go inside?", answer: "keyboard"},
	2: {scenario: "I speak without a mouth and hear without ears. I have no body, but come alive with wind. What am I?", answer: "echo"},
	3: {scenario: "The more you take, the more you leave behind. What am I?", answer: "footsteps"},
	4: {scenario: "I am taken from a mine and shut in a wooden case, from which I am never released, yet I am used by almost everyone. What am I?", answer: "pencil lead"},
	5: {scenario: "At night they come without being fetched. By day they are lost without being stolen. What are they?", answer: "stars"},
}

func logicRiddle(difficulty int) *models.Exercise {
	puzzle, ok := riddles[difficulty]
	if !ok {
		puzzle = riddles[3]
	}

	question := fmt.Sprintf("Logic Puzzle - Riddle\n\n%s\n\nType your answer:", puzzle.scenario)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryLogic,
		Subtype:          "riddle",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: puzzle.answer},
		TimeLimitSeconds: 120,
		Hints: []string{
			"Think metaphorically",
			"Consider multiple meanings",
			"What fits all the clues?",
		},
	}
}

func logicGrid(difficulty int) *models.Exercise {
	question := `Logic Puzzle - Grid Logic

Three people (Alex, Bailey, Casey) each have a favorite color (Red, Blue, Green) and a pet (Dog, Cat, Fish).

Clues:
1. Alex doesn't like Red
2. The person who likes Blue has a Cat
3. Casey has a Fish
4. Bailey doesn't like Green

Question: What color does Alex like?

Type your answer (Red, Blue, or Green):`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryLogic,
		Subtype:          "grid_logic",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "green"},
		Options:          []string{"Red", "Blue", "Green"},
		TimeLimitSeconds: 120 + difficulty*20,
		Hints: []string{
			"Make a table with people, colors, and pets",
			"Use process of elimination",
			"Start with definite facts",
		},
	}
}

// ── Problem Solving ─────────────────────────────────────

func generateProblemSolving(difficulty int) *models.Exercise {
	generators := []func(int) *models.Exercise{
		problemOptimization,
		problemResourceAllocation,
		problemStrategy,
		problemMultiStep,
	}
	return generators[rand.Intn(len(generators))](difficulty)
}

var optimizations = map[int]deductionPuzzle{
	1: {
		scenario: "You need to pack 3 boxes. Box A holds 5 items, Box B holds 3 items, Box C holds 2 items. You have 8 items to pack.",
		question: "What's the minimum number of boxes needed?",
		answer:   "2",
	},
	2: {
		scenario: "You're organizing a 3-hour meeting. Presentation: 45 min, Discussion: 60 min, Break: 15 min, Q&A: 30 min, Buffer time needed: 15 min.",
		question: "How many minutes over the 3-hour limit are you? (Enter 0 if under)",
		answer:   "0",
	},
	3: {
		scenario: "A team needs to complete 5 tasks. Task dependencies: B needs A, D needs B and C, E needs D. Tasks take: A=2h, B=3h, C=4h, D=2h, E=1h.",
		question: "What's the minimum hours to complete all tasks with unlimited people?",
		answer:   "8",
	},
	4: {
		scenario: "You have a budget of $1000. Item A costs $150 (value: 200), Item B costs $300 (value: 350), Item C costs $250 (value: 300), Item D costs $400 (value: 450).",
		question: "What's the maximum value you can achieve? (Just the number)",
		answer:   "1050",
	},
	5: {
		scenario: "Schedule 5 meetings in 3 rooms over 2 days. M1: 2h (needs Room A), M2: 1h, M3: 3h (needs Room B), M4: 1.5h, M5: 2h. Each day is 8h. Rooms A, B, C available.",
		question: "What's the minimum number of time conflicts?",
		answer:   "0",
	},
}

func problemOptimization(difficulty int) *models.Exercise {
	problem, ok := optimizations[difficulty]
	if !ok {
		problem = optimizations[3]
	}

	question := fmt.Sprintf("Problem Solving - Optimization\n\n%s\n\n%s", problem.scenario, problem.question)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryProblemSolving,
		Subtype:          "optimization",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: problem.answer},
		TimeLimitSeconds: 120 + difficulty*30,
		Hints: []string{
			"Write down all the constraints",
			"Look for the critical path",
			"Try different combinations",
		},
	}
}

func problemResourceAllocation(difficulty int) *models.Exercise {
	question := `Problem Solving - Resource Allocation

You manage 3 team members (Alice, Bob, Carol) for 2 projects.

Project 1 needs: 2 people for 3 days
Project 2 needs: 2 people for 2 days

Alice is available all 5 days
Bob is available days 1-3
Carol is available days 2-5

Question: Can both projects be completed? (yes/no)`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryProblemSolving,
		Subtype:          "resource_allocation",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "yes"},
		Options:          []string{"yes", "no"},
		TimeLimitSeconds: 90 + difficulty*20,
		Hints: []string{
			"Draw a timeline",
			"Check each person's availability",
			"See if schedules overlap properly",
		},
	}
}

func problemStrategy(difficulty int) *models.Exercise {
	question := `Problem Solving - Strategy

You're launching a new product. You have 3 marketing channels:
- Social Media: Reaches 10k people, costs $500, 2% conversion
- Email: Reaches 5k people, costs $200, 5% conversion
- Ads: Reaches 20k people, costs $1000, 1% conversion

Budget: $1500
Goal: Maximum customers

Which strategy gets the most customers?
A) Social Media + Email
B) Social Media + Ads
C) Email + Ads

Type A, B, or C:`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryProblemSolving,
		Subtype:          "strategy",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "a"},
		Options:          []string{"A", "B", "C"},
		TimeLimitSeconds: 120,
		Hints: []string{
			"Calculate customers per dollar",
			"Compare total customers for each option",
			"Check your math",
		},
	}
}

func problemMultiStep(difficulty int) *models.Exercise {
	question := `Problem Solving - Multi-Step

A company has these issues:
1. Customer complaints increased 30%
2. Response time doubled to 48 hours
3. Support team shrunk from 10 to 6 people

Which should be addressed FIRST?
A) Hire more support staff
B) Implement faster ticketing system
C) Analyze complaint causes
D) Train existing staff

Type A, B, C, or D:`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryProblemSolving,
		Subtype:          "multi_step",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "c"},
		Options:          []string{"A", "B", "C", "D"},
		TimeLimitSeconds: 90,
		Hints: []string{
			"What gives you the most information?",
			"Consider root cause analysis",
			"Think about efficiency vs. effectiveness",
		},
	}
}

// ── Pattern Recognition ─────────────────────────────────

func generatePattern(difficulty int) *models.Exercise {
	generators := []func(int) *models.Exercise{
		patternNumberSequence,
		patternAnalogy,
		patternClassification,
	}
	return generators[rand.Intn(len(generators))](difficulty)
}

type sequencePuzzle struct {
	sequence []string
	answer   string
	pattern  string
}

var numberSequences = map[int]sequencePuzzle{
	1: {sequence: []string{"2", "4", "6", "8", "?"}, answer: "10", pattern: "Add 2"},
	2: {sequence: []string{"3", "6", "12", "24", "?"}, answer: "48", pattern: "Multiply by 2"},
	3: {sequence: []string{"1", "1", "2", "3", "5", "8", "?"}, answer: "13", pattern: "Fibonacci"},
	4: {sequence: []string{"2", "3", "5", "7", "11", "?"}, answer: "13", pattern: "Prime numbers"},
	5: {sequence: []string{"1", "4", "9", "16", "25", "?"}, answer: "36", pattern: "Perfect squares"},
}

func patternNumberSequence(difficulty int) *models.Exercise {
	seq, ok := numberSequences[difficulty]
	if !ok {
		seq = numberSequences[3]
	}

	question := fmt.Sprintf(`Pattern Recognition - Number Sequence

What number comes next?

%s

Type your answer (just the number):`, strings.Join(seq.sequence, ", "))

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryPatternRecognition,
		Subtype:          "number_sequence",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: seq.answer},
		TimeLimitSeconds: 60 + difficulty*15,
		Hints: []string{
			"Look for arithmetic patterns",
			"Try differences between numbers",
			fmt.Sprintf("Pattern hint: %s...", seq.pattern[:3]),
		},
	}
}

var analogies = map[int]deductionPuzzle{
	1: {scenario: "Hot is to Cold as Up is to ___", answer: "down"},
	2: {scenario: "Pen is to Writer as Brush is to ___", answer: "painter"},
	3: {scenario: "Book is to Library as Painting is to ___", answer: "gallery"},
	4: {scenario: "Engine is to Car as Processor is to ___", answer: "computer"},
	5: {scenario: "Hypothesis is to Theory as Sketch is to ___", answer: "masterpiece"},
}

func patternAnalogy(difficulty int) *models.Exercise {
	analogy, ok := analogies[difficulty]
	if !ok {
		analogy = analogies[3]
	}

	question := fmt.Sprintf("Pattern Recognition - Analogy\n\nComplete the analogy:\n\n%s\n\nType your answer:", analogy.scenario)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryPatternRecognition,
		Subtype:          "analogy",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: analogy.answer},
		TimeLimitSeconds: 60,
		Hints: []string{
			"What's the relationship?",
			"Think about function or purpose",
			"Consider the context",
		},
	}
}

func patternClassification(difficulty int) *models.Exercise {
	question := `Pattern Recognition - Classification

Which word doesn't belong?

Apple, Banana, Carrot, Orange, Grape

Type your answer:`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryPatternRecognition,
		Subtype:          "classification",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "carrot"},
		TimeLimitSeconds: 45,
		Hints: []string{
			"What do most of them have in common?",
			"Think about categories",
			"One is different from the others",
		},
	}
}

// ── Attention ───────────────────────────────────────────

func generateAttention(difficulty int) *models.Exercise {
	generators := []func(int) *models.Exercise{
		attentionSelective,
		attentionFiltering,
		attentionFocus,
	}
	return generators[rand.Intn(len(generators))](difficulty)
}

var attentionDistractors = []string{"the", "and", "but", "for", "with", "from", "about"}
var attentionTargets = []string{"focus", "attention", "concentrate"}

func attentionSelective(difficulty int) *models.Exercise {
	var words []string
	for i := 0; i < difficulty+2; i++ {
		perm := rand.Perm(len(attentionDistractors))
		for j := 0; j < 3; j++ {
			words = append(words, attentionDistractors[perm[j]])
		}
		words = append(words, attentionTargets[rand.Intn(len(attentionTargets))])
	}
	text := strings.Join(words, " ")

	count := 0
	for _, w := range words {
		if w == "focus" {
			count++
		}
	}

	question := fmt.Sprintf(`Attention Exercise - Selective Attention

Count how many times the word "focus" appears in the following text:

%s

Type your answer (just the number):`, text)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryAttention,
		Subtype:          "selective_attention",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: fmt.Sprintf("%d", count)},
		TimeLimitSeconds: 60 + difficulty*10,
		Hints: []string{
			"Read carefully",
			"Don't count similar words",
			"Read through twice to verify",
		},
	}
}

func attentionFiltering(difficulty int) *models.Exercise {
	question := `Attention Exercise - Information Filtering

Read this scenario and identify the KEY information:

"Sarah needs to attend a meeting at 2 PM. She likes coffee. The meeting is in Room 304. Her favorite color is blue. She needs to bring the Q3 report. The weather is sunny. The report is on her desk."

What are the 3 essential pieces of information for the meeting? (separate with commas)

Example format: time, location, item`

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryAttention,
		Subtype:          "information_filtering",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: "2 pm, room 304, q3 report"},
		TimeLimitSeconds: 90,
		Hints: []string{
			"What's directly relevant to the meeting?",
			"Ignore personal preferences",
			"Focus on actionable information",
		},
	}
}

func attentionFocus(difficulty int) *models.Exercise {
	num1 := 10 + rand.Intn(41)
	num2 := 10 + rand.Intn(41)
	num3 := 1 + rand.Intn(10)

	question := fmt.Sprintf(`Attention Exercise - Focus Challenge

Calculate: (%d + %d) × %d

But first, ignore this distraction:
- The sky is blue
- 2 + 2 = 4
- Elephants are large

Now solve: (%d + %d) × %d = ?

Type your answer (just the number):`, num1, num2, num3, num1, num2, num3)

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryAttention,
		Subtype:          "focus_challenge",
		Difficulty:       difficulty,
		Question:         question,
		Answer:           models.Answer{Text: fmt.Sprintf("%d", (num1+num2)*num3)},
		TimeLimitSeconds: 60,
		Hints: []string{
			"Follow order of operations",
			"Ignore the distractors",
			"Calculate step by step",
		},
	}
}
