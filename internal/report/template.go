package report

// Template is the fixed report document. Every [UPPER_CASE] token is
// resolved by Assemble before the document leaves the service.
const Template = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Student Well-Being Survey Report - [SCHOOL_NAME]</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap" rel="stylesheet">
    <style>
        body { font-family: 'Inter', sans-serif; background-color: #f9fafb; color: #1e293b; -webkit-print-color-adjust: exact; }
        .report-section { background: #ffffff; margin-bottom: 3rem; overflow: hidden; border: 1px solid #f1f5f9; border-radius: 1.5rem; }
        .text-navy { color: #0c4a6e; }
        .hero-gradient { background: linear-gradient(135deg, #0c4a6e 0%, #075985 100%); }
        .chart-bar-bg { background-color: #f1f5f9; border-radius: 9999px; height: 1.5rem; width: 100%; overflow: hidden; position: relative; }
        .chart-bar-fill { height: 100%; border-radius: 9999px; }
    </style>
</head>
<body class="p-8">
    <div class="max-w-5xl mx-auto">
        <header class="report-section hero-gradient text-white p-12 flex flex-col items-center text-center border-none">
            <div class="mb-10 bg-white p-4 rounded-xl shadow-lg">
                <img src="[SCHOOL_LOGO_URL]" alt="School Logo" class="h-24 w-auto" style="max-height: 96px; object-fit: contain;">
            </div>
            <p class="text-xl uppercase tracking-widest text-blue-200 font-semibold mb-2">[SCHOOL_NAME]</p>
            <h1 class="text-5xl font-extrabold mb-6 leading-tight">Student Exam Stress Manometer</h1>
            <div class="w-24 h-1 bg-blue-400 mb-8"></div>
            <div class="space-y-3 text-blue-100">
                <p class="text-xl font-medium">SURVEY REPORT</p>
                <p>Published [PUBLISHED_YEAR]</p>
                <div class="flex items-center justify-center gap-2 text-lg font-medium mt-4">
                    <p>- By</p>
                    <p>[ORG_TEAM]</p>
                </div>
                <p class="opacity-80 pt-2">[ORG_WEBSITE]</p>
            </div>
        </header>

        <section id="executive-summary" class="report-section">
            <div class="p-10 md:p-12">
                <div class="flex items-center gap-3 mb-8 border-b border-gray-50 pb-6">
                    <h2 class="text-3xl font-bold text-navy uppercase tracking-tight">Executive Summary</h2>
                </div>
                <div class="grid grid-cols-1 md:grid-cols-2 gap-12 mb-10">
                    <div class="space-y-4 text-gray-700 leading-relaxed text-lg">
                        <p>[EXEC_SUMMARY_P1]</p>
                        <p>[EXEC_SUMMARY_P2]</p>
                    </div>
                    <div class="space-y-4 text-gray-700 leading-relaxed text-lg">
                        <p class="font-semibold text-navy">[EXEC_SUMMARY_KEY_FINDING]</p>
                        <p>[EXEC_SUMMARY_CONCLUSION]</p>
                    </div>
                </div>
                <div class="p-8 border-l-4 border-blue-600 mb-12 italic text-gray-600 bg-slate-50/50 text-xl rounded-r-xl">
                    "[INSERT_KEY_QUOTE]"
                </div>
            </div>
        </section>

        <section id="overview" class="report-section p-10 md:p-12">
            <div class="flex flex-col md:flex-row gap-12">
                <div class="md:w-1/3">
                    <h2 class="text-2xl font-bold text-navy mb-4 uppercase">Survey Overview</h2>
                    <p class="text-gray-600 leading-relaxed">Structured snapshot outlining scale, mode, and analytical logic used to capture student perspectives.</p>
                </div>
                <div class="md:w-2/3 space-y-2">
                    <div class="flex items-center p-5 border-b border-gray-100">
                        <div class="w-40 font-bold text-navy uppercase text-xs tracking-wider">Survey Name:</div>
                        <div class="text-gray-700">Student Well-Being &amp; Assessment Experience Survey</div>
                    </div>
                    <div class="flex items-center p-5 border-b border-gray-100">
                        <div class="w-40 font-bold text-navy uppercase text-xs tracking-wider">Participants:</div>
                        <div class="text-gray-700">[COUNT] Students</div>
                    </div>
                    <div class="flex items-center p-5 border-b border-gray-100">
                        <div class="w-40 font-bold text-navy uppercase text-xs tracking-wider">Mode:</div>
                        <div class="text-gray-700">[MODE]</div>
                    </div>
                    <div class="flex items-center p-5 border-b border-gray-100">
                        <div class="w-40 font-bold text-navy uppercase text-xs tracking-wider">Nature:</div>
                        <div class="text-gray-700">Anonymous, self-reported</div>
                    </div>
                    <div class="flex items-center p-5 border-b border-gray-100">
                        <div class="w-40 font-bold text-navy uppercase text-xs tracking-wider">Focus:</div>
                        <div class="text-gray-700">Emotional impact of assessments</div>
                    </div>
                </div>
            </div>
        </section>

        <section class="grid grid-cols-1 md:grid-cols-2 gap-12 mb-16">
            <div class="p-10 border border-slate-100 rounded-2xl bg-white">
                <h2 class="text-2xl font-bold text-navy mb-8 uppercase tracking-widest flex items-center gap-2">Objectives</h2>
                <ul class="space-y-6">
                    <li class="flex gap-4"><span class="text-blue-600 font-bold text-xl">01</span><p class="text-gray-700">Collect evidence on emotional responses to tests.</p></li>
                    <li class="flex gap-4"><span class="text-blue-600 font-bold text-xl">02</span><p class="text-gray-700">Analyze stress associated with performance expectations.</p></li>
                    <li class="flex gap-4"><span class="text-blue-600 font-bold text-xl">03</span><p class="text-gray-700">Classify students into defined stress categories.</p></li>
                </ul>
            </div>
            <div class="p-10 border border-slate-100 rounded-2xl bg-white">
                <h2 class="text-2xl font-bold text-navy mb-4 uppercase">Design &amp; Methodology</h2>
                <p class="text-gray-600 mb-6">20 structured statements on a 5-point scale from <span class="font-semibold">Never</span> to <span class="font-semibold">Always</span>.</p>
            </div>
        </section>

        <section id="scoring" class="report-section p-10 md:p-12">
            <div class="mb-12">
                <h2 class="text-4xl font-extrabold text-navy tracking-tight mb-2 uppercase">Scoring Framework</h2>
                <div class="h-1 w-20 bg-blue-600"></div>
            </div>
            <div class="space-y-1">
                [SCORING_TABLE]
            </div>
            <div class="mt-12 p-6 bg-slate-50 rounded-xl text-gray-500 text-sm">
                <p>Note: Participation was anonymous. Scoring logic was applied strictly without subjective interpretation.</p>
            </div>
        </section>

        <section id="results" class="report-section p-10 md:p-12">
            <div class="mb-12 text-center">
                <h2 class="text-3xl font-bold text-navy mb-2 uppercase tracking-tighter">Student Well-Being</h2>
                <p class="text-xl text-gray-400">Stress Category Distribution</p>
            </div>
            <div class="mb-16 flex justify-center">
                <img src="[DYNAMIC_CHART_IMAGE]" alt="Stress Distribution Chart" class="w-full max-w-4xl rounded-xl shadow-sm">
            </div>
            <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-12">
                <div class="pb-6 border-b-2 border-green-500">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Emotionally Balanced</h3>
                        <span class="text-3xl font-black text-green-600">[VAL_BALANCED]</span>
                    </div>
                    <p class="text-sm text-gray-500">[PCT_BALANCED]% &mdash; Stable emotional states.</p>
                </div>
                <div class="pb-6 border-b-2 border-blue-500">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Mildly Stressed</h3>
                        <span class="text-3xl font-black text-blue-600">[VAL_MILD]</span>
                    </div>
                    <p class="text-sm text-gray-500">[PCT_MILD]% &mdash; Minor stress levels.</p>
                </div>
                <div class="pb-6 border-b-2 border-yellow-500">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Moderately Stressed</h3>
                        <span class="text-3xl font-black text-yellow-600">[VAL_MOD]</span>
                    </div>
                    <p class="text-sm text-gray-500">[PCT_MOD]% &mdash; Significant challenges.</p>
                </div>
                <div class="pb-6 border-b-2 border-orange-500">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Highly Stressed</h3>
                        <span class="text-3xl font-black text-orange-600">[VAL_HIGH]</span>
                    </div>
                    <p class="text-sm text-gray-500">[PCT_HIGH]% &mdash; Intense experiences.</p>
                </div>
                <div class="pb-6 border-b-2 border-red-500">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Severely Stressed</h3>
                        <span class="text-3xl font-black text-red-600">[VAL_SEVERE]</span>
                    </div>
                    <p class="text-sm text-gray-500">[PCT_SEVERE]% &mdash; Extreme stress levels.</p>
                </div>
                <div class="pb-6 border-b-2 border-gray-900">
                    <div class="flex justify-between items-baseline mb-2">
                        <h3 class="font-bold text-gray-900 uppercase text-sm tracking-widest">Total Surveyed</h3>
                        <span class="text-3xl font-black text-gray-900">[VAL_TOTAL]</span>
                    </div>
                    <p class="text-sm text-gray-500">100% Valid Responses.</p>
                </div>
            </div>
        </section>

        <section id="national-benchmark" class="report-section p-10 md:p-12">
            <div class="mb-10">
                <h2 class="text-3xl font-bold text-navy mb-4 uppercase tracking-tighter">National Benchmark Comparison: <span class="text-blue-600">Student Stress Levels (India)</span></h2>
                <div class="h-1 w-24 bg-blue-600 mb-6"></div>
                <p class="text-gray-600 leading-relaxed text-lg">
                    To contextualize findings, student responses were compared against established benchmarks from the <strong>NCERT National Survey (2022)</strong> and Indian academic morbidity studies (2020&ndash;2024).
                </p>
            </div>
            <div class="mb-16">
                <h3 class="text-2xl font-bold text-navy mb-6 text-center">Stress Category Distribution: School vs. National Benchmark</h3>
                <div class="space-y-8 max-w-3xl mx-auto">
                    <div>
                        <div class="flex justify-between mb-2 text-sm font-bold uppercase tracking-widest text-gray-500">
                            <span>[SCHOOL_NAME]</span>
                            <span>Valid N=[VAL_TOTAL]</span>
                        </div>
                        <div class="flex h-12 w-full rounded-xl overflow-hidden shadow-inner">
                            <div class="bg-green-500" style="width: [PCT_BALANCED]%;" title="Balanced"></div>
                            <div class="bg-blue-500" style="width: [PCT_MILD]%;" title="Mild"></div>
                            <div class="bg-yellow-500" style="width: [PCT_MOD]%;" title="Moderate"></div>
                            <div class="bg-orange-500" style="width: [PCT_HIGH]%;" title="High"></div>
                            <div class="bg-red-500" style="width: [PCT_SEVERE]%;" title="Severe"></div>
                        </div>
                    </div>
                </div>
            </div>

            <div class="mb-12">
                <h3 class="text-2xl font-bold text-navy mb-10 text-center">Key Stress Indicator Comparison</h3>
                <div class="grid grid-cols-1 gap-8">
                    <div>
                        <div class="flex justify-between text-sm font-bold text-gray-600 mb-2">
                            <span>Exam Anxiety (Frequent Nervousness)</span>
                            <div class="flex gap-4">
                                <span class="text-blue-600">School: [PCT_ANXIETY]%</span>
                                <span class="text-gray-400">National: [NAT_ANXIETY]%</span>
                            </div>
                        </div>
                        <div class="chart-bar-bg">
                            <div class="chart-bar-fill bg-blue-600" style="width: [PCT_ANXIETY]%;"></div>
                            <div class="absolute top-0 bottom-0 w-1 bg-red-400 border-x border-white" style="left: [NAT_ANXIETY]%;"></div>
                        </div>
                    </div>
                    <div>
                        <div class="flex justify-between text-sm font-bold text-gray-600 mb-2">
                            <span>Parental Performance Pressure</span>
                            <div class="flex gap-4">
                                <span class="text-blue-600">School: [PCT_PARENT_PRESSURE]%</span>
                                <span class="text-gray-400">National: [NAT_PARENT_PRESSURE]%</span>
                            </div>
                        </div>
                        <div class="chart-bar-bg">
                            <div class="chart-bar-fill bg-blue-600" style="width: [PCT_PARENT_PRESSURE]%;"></div>
                            <div class="absolute top-0 bottom-0 w-1 bg-red-400 border-x border-white" style="left: [NAT_PARENT_PRESSURE]%;"></div>
                        </div>
                    </div>
                    <div>
                        <div class="flex justify-between text-sm font-bold text-gray-600 mb-2">
                            <span>Support Accessibility (Can talk to teachers/counselors)</span>
                            <div class="flex gap-4">
                                <span class="text-blue-600">School: [PCT_SUPPORT]%</span>
                                <span class="text-gray-400">National: [NAT_SUPPORT]%</span>
                            </div>
                        </div>
                        <div class="chart-bar-bg">
                            <div class="chart-bar-fill bg-green-500" style="width: [PCT_SUPPORT]%;"></div>
                            <div class="absolute top-0 bottom-0 w-1 bg-red-400 border-x border-white" style="left: [NAT_SUPPORT]%;"></div>
                        </div>
                    </div>
                </div>
            </div>

            <div class="p-10 border border-blue-50 rounded-2xl bg-blue-50/20">
                <h3 class="text-2xl font-bold text-navy mb-6">Interpretation &amp; Insights</h3>
                <div class="grid grid-cols-1 md:grid-cols-2 gap-10">
                    <div class="space-y-4">
                        <div class="p-4 bg-white rounded-xl">
                            <h4 class="text-green-700 font-bold flex items-center gap-2 mb-2">Strengths vs. National Trend</h4>
                            <p class="text-sm text-gray-600 leading-relaxed">[INSIGHT_STRENGTHS]</p>
                        </div>
                    </div>
                    <div class="space-y-4">
                        <div class="p-4 bg-white rounded-xl">
                            <h4 class="text-orange-700 font-bold flex items-center gap-2 mb-2">Points of Intervention</h4>
                            <p class="text-sm text-gray-600 leading-relaxed">[INSIGHT_WEAKNESS]</p>
                        </div>
                    </div>
                </div>
            </div>
        </section>

        <footer class="text-center p-12 text-gray-400 text-xs mt-12">
            <div class="flex justify-center mb-8">
                <img src="[SCHOOL_LOGO_URL]" alt="Logo Small" class="h-8 grayscale opacity-30">
            </div>
            <p class="uppercase tracking-widest mb-2 font-bold">
                &copy; [PUBLISHED_YEAR] [ORG_NAME] Survey Reports
            </p>
            <p>[SCHOOL_NAME] &mdash; Student Assessment Experience</p><br><br>
            <p class="mb-2"><b>Confidentiality &amp; Ownership Notice:</b>
            This report is confidential and jointly owned by [ORG_NAME] and [SCHOOL_NAME].
            All rights are reserved. Any unauthorized use, reproduction, or distribution,
            in whole or in part, without written consent from both parties is strictly
            prohibited.</p>
        </footer>
    </div>
</body>
</html>
`

// ScoringTable is the fixed band legend inserted into the scoring section.
const ScoringTable = `<div class="grid grid-cols-5 gap-2 text-center text-xs font-medium text-gray-500">
                    <div class="bg-green-100 p-2 rounded">20-39<br>Balanced</div>
                    <div class="bg-blue-100 p-2 rounded">40-54<br>Mild</div>
                    <div class="bg-yellow-100 p-2 rounded">55-69<br>Moderate</div>
                    <div class="bg-orange-100 p-2 rounded">70-84<br>High</div>
                    <div class="bg-red-100 p-2 rounded">85-100<br>Severe</div>
                </div>`
