package wxf

import "strings"

// IsSystemSymbol reports whether name is a built-in symbol of the System
// context. Registered names are never qualified.
func IsSystemSymbol(name string) bool {
	_, ok := systemSymbols[name]
	return ok
}

// SystemSymbolCount returns the size of the built-in registry.
func SystemSymbolCount() int {
	return len(systemSymbols)
}

// systemSymbols is built once at package initialization and never written
// afterwards.
var systemSymbols = func() map[string]struct{} {
	names := strings.Fields(systemSymbolNames)
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}
	return m
}()

const systemSymbolNames = `
Abs AbsoluteTime Accumulate AccountingForm Accuracy AddTo AdjacencyMatrix
AiryAi AiryBi All AllTrue Alternatives And AngleVector Annotation
Append AppendTo Apply ArcCos ArcCosh ArcCot ArcCoth ArcCsc ArcCsch ArcSec
ArcSech ArcSin ArcSinh ArcTan ArcTanh Arg Array ArrayDepth ArrayFlatten
ArrayPad ArrayQ ArrayReshape Arrays Assert Association AssociationMap
AssociationQ AssociationThread AssociateTo Assuming Assumptions AtomQ
Attributes Automatic Axes AxesLabel AxesOrigin

BarChart Background BaseForm Because BernoulliB BesselI BesselJ BesselK
BesselY Beta BinCounts Binomial BinaryDeserialize BinaryRead BinarySerialize
BinaryWrite BitAnd BitLength BitNot BitOr BitShiftLeft BitShiftRight BitXor
Black Blank BlankNullSequence BlankSequence Block Blue Bold Boole BooleanQ
Booleans Bottom BoxData Break ByteArray ByteArrayQ ByteArrayToString ByteCount

Cancel Cases Catalan Catch Ceiling CellularAutomaton CenterDot
CharacterRange Characters ChebyshevT ChebyshevU Check Chop Circle Clear
ClearAll Clip Close Coefficient CoefficientList Collect Colon Column
Complement Complex ComplexInfinity Complexes ComposeList Composition
CompoundExpression Compile CompiledFunction Condition Conjugate Constant
ConstantArray Context Contexts Continue ContinuedFraction ContourPlot
Convolve CopyFile Cos Cosh Cot Coth Count CountDistinct Counts CountsBy
Cross Csc Csch CurrentDate CurrentValue Cyan

D DataRange Dataset Date DateDifference DateList DateObject DateObjectQ
DatePlus DateString DateValue Decrement Default Defer Degree Delete
DeleteCases DeleteDuplicates DeleteDuplicatesBy DeleteFile DeleteMissing
Denominator Depth Derivative DesignMatrix Det DiagonalMatrix Dialog
DigitCount DigitQ Dimensions DirectedEdge DirectedInfinity Directive
Directory DiscreteDelta Disk Dispatch Divide DivideBy Divisible Divisors
Do Dot DownValues Drop DSolve Dynamic

E EdgeList EditDistance Eigensystem Eigenvalues Eigenvectors Element
Eliminate EllipticE EllipticK EllipticTheta End EndPackage Entity
EntityValue Epilog Equal Erf Erfc Erfi Evaluate EvenQ Except Exists Exp
Expand ExpandAll ExpIntegralE ExpIntegralEi Exponent Export ExportString
Expression Extract

Factor FactorInteger Factorial Factorial2 False Fibonacci File FileExistsQ
FileNames Filling FilterRules Find FindFit FindInstance FindMaximum
FindMinimum FindRoot First FirstCase FirstPosition Fit FixedPoint
FixedPointList Flatten FlattenAt Floor Fold FoldList For ForAll Format
FourierTransform FractionalPart Frame FrameLabel FreeQ FromCharacterCode
FromDigits FullForm FullSimplify Function

Gamma GatherBy Gather GCD GeoPosition Get GoldenRatio Goto Gradient Graph
GraphPlot Graphics Graphics3D Gray Greater GreaterEqual Green Grid
GroupBy

Hash Head Heads HermiteH Hold HoldAll HoldAllComplete HoldComplete HoldFirst
HoldForm HoldPattern HoldRest Hue Hypergeometric2F1

I Identity IdentityMatrix If Im Image ImageSize Implies Import ImportString
In Increment Indeterminate Infinity Infix Inner Input InputForm Insert
Integer IntegerDigits IntegerLength IntegerPart IntegerQ Integers Integrate
Interpolation InterpolatingFunction Intersection Interval Inverse
InverseFunction InverseLaplaceTransform Italic

Join Joined

KeyDrop KeyExistsQ KeyMap KeySelect KeySort KeySortBy KeyTake KeyValueMap
Keys KroneckerDelta

Label LaguerreL LaplaceTransform Large Last LCM LeafCount LegendreP Length
LengthWhile Less LessEqual Level LetterQ Limit Line LinearSolve List
ListLinePlot ListLogPlot ListPlot ListPlot3D Listable Locked Log Log10 Log2
LogPlot Lookup LowerCaseQ LUDecomposition

Manipulate Map MapAt MapIndexed MapThread MatchQ MatrixForm MatrixPower
MatrixQ MatrixRank Max MaxMemoryUsed Maximize Mean Median Medium MemberQ
MemoryInUse Merge Message MessageName Messages Min Minimize Minus Missing
Mod Module Most Multinomial

N NameQ Names Nand Needs Negative None Nothing Nest NestList NestWhile NestWhileList
NIntegrate NMaximize NMinimize Nor Norm Normal Normalize Not NotebookDirectory
Now NSolve Null NullSpace Number NumberForm NumberQ Numerator NumericArray
NumericQ NumericArrayQ

OddQ Off On Opacity Optional Options OptionsPattern OptionValue Or Orange
Order OrderedQ Ordering Out Outer OutputForm Overlaps

PackedArrayQ Pane Panel Part Partition PartitionsP Pattern PatternTest
Pause Permutations Pi Piecewise Pink Plot Plot3D PlotLabel PlotLegends
PlotRange PlotStyle Plus PlusMinus Pochhammer Point PointSize PolyGamma
Polygon PolynomialQ PolynomialQuotient PolynomialRemainder Position
Positive Power PowerExpand PowerMod Precision Prepend PrependTo Prime
PrimeFactors PrimePi PrimeQ Print Product Protect Protected Purple Put

QRDecomposition Quantile Quantity QuantityMagnitude QuantityUnit Quiet
Quit Quotient

Random RandomChoice RandomComplex RandomInteger RandomReal RandomSample
RandomVariate Range Rational Rationalize Rationals Re Read ReadList
ReadProtected Real RealAbs RealDigits Reals Reap Record Rectangle Red
Reduce Refine RegularExpression ReleaseHold Remove Repeated RepeatedNull
Replace ReplaceAll ReplaceList ReplacePart ReplaceRepeated Rescale Rest
Resultant Return Reverse RGBColor Riffle Right RotateLeft RotateRight
Round Row RowReduce Rule RuleDelayed Run RunThrough

SameQ Scan Sec Sech Select SelectFirst SeedRandom Sequence SequenceHold
Series SeriesData Set SetAttributes SetDelayed SetDirectory SetOptions
Short Show Sign Simplify Sin Sinc SingularValueDecomposition Sinh Skip
Slot SlotSequence Small Solve Sort SortBy Sow Span Sphere Split SplitBy
Sqrt SqrtBox Squared StandardDeviation StandardForm StringCases
StringContainsQ StringCount StringDelete StringDrop StringEndsQ
StringExpression StringForm StringJoin StringLength StringMatchQ
StringPadLeft StringPadRight StringPart StringPosition StringQ
StringReplace StringReverse StringRiffle StringSplit StringStartsQ
StringTake StringTemplate StringToByteArray StringTrim Style Subscript
Subtract SubtractFrom Sum Superscript Switch Symbol SymbolName
SyntaxQ

Table TableForm Tag TagSet TagSetDelayed Take TakeWhile Tally Tan Tanh
Temporary TensorProduct TensorRank Text Thick Thickness Thin Thread
Through Throw Ticks TimeConstrained TimeObject TimeZone Times
TimesBy Timing ToCharacterCode ToExpression ToLowerCase ToString
ToUpperCase Together Top Total Tr TraditionalForm Transpose Tree TreeForm
True TrueQ Tuples

Unequal Unevaluated Union Unique UnitStep Unitize Unprotect UnsameQ Unset
UpperCaseQ UpSet UpSetDelayed UpValues

ValueQ Values Variables Variance VectorQ Verbatim

Which While White With Word Write WriteString

Xor

Yellow

Zeta
`
